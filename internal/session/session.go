// Package session owns the cookie store shared by every service client.
// All three login flows mutate it, and every outgoing request reads from it
// through the http.Client's jar.
package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// cookieAttributes are Set-Cookie attribute names that must not be mistaken
// for cookie pairs when parsing a raw cookie string pasted from a browser.
var cookieAttributes = map[string]bool{
	"path":     true,
	"domain":   true,
	"expires":  true,
	"max-age":  true,
	"secure":   true,
	"httponly": true,
	"samesite": true,
}

// Store wraps a shared, domain-keyed cookie jar. One Store is constructed
// per client instance and handed to every service client; there is no
// package-level singleton. The underlying jar is safe for concurrent use,
// but interleaving two login flows against one Store is the caller's
// responsibility to avoid.
type Store struct {
	jar *cookiejar.Jar
}

// New creates an empty cookie store.
func New() (*Store, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("session: creating cookie jar: %w", err)
	}

	return &Store{jar: jar}, nil
}

// Jar exposes the underlying jar for wiring into an http.Client. Responses
// that set cookies for a domain make them visible to later requests to that
// domain through the same jar.
func (s *Store) Jar() http.CookieJar {
	return s.jar
}

// AddCookieString seeds the jar with cookies for origin. raw is a
// semicolon-separated cookie string ("name=value; name2=value2"), the form
// users copy out of a browser. Set-Cookie attribute segments are skipped.
func (s *Store) AddCookieString(raw, origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("session: parsing origin %q: %w", origin, err)
	}

	var cookies []*http.Cookie

	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, value, found := strings.Cut(segment, "=")
		if !found {
			continue
		}

		name = strings.TrimSpace(name)
		if cookieAttributes[strings.ToLower(name)] {
			continue
		}

		cookies = append(cookies, &http.Cookie{Name: name, Value: strings.TrimSpace(value)})
	}

	if len(cookies) == 0 {
		return fmt.Errorf("session: no cookies in %q", raw)
	}

	s.jar.SetCookies(u, cookies)

	return nil
}

// CookieHeader returns the Cookie header value the jar would send to origin,
// or ok=false when no cookies are stored for it.
func (s *Store) CookieHeader(origin string) (string, bool) {
	cookies, err := s.cookiesFor(origin)
	if err != nil || len(cookies) == 0 {
		return "", false
	}

	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}

	return strings.Join(parts, "; "), true
}

// CookieValue returns the value of the named cookie stored for origin.
func (s *Store) CookieValue(origin, name string) (string, bool) {
	cookies, err := s.cookiesFor(origin)
	if err != nil {
		return "", false
	}

	for _, c := range cookies {
		if c.Name == name {
			return c.Value, true
		}
	}

	return "", false
}

func (s *Store) cookiesFor(origin string) ([]*http.Cookie, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("session: parsing origin %q: %w", origin, err)
	}

	return s.jar.Cookies(u), nil
}
