package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
)

// Login-flow failures. Each step either finds what it needs in that exact
// response or the flow cannot proceed; none of these is a retry condition.
var (
	ErrNoSessionUUID = errors.New("video: no session uuid in profile page")
	ErrNoAuthCookie  = errors.New("video: identity provider issued no auth cookie")
	ErrLoginRejected = errors.New("video: login rejected by identity provider")
	ErrNoCookies     = errors.New("video: no platform session cookies after login")
)

// authCookieName is the cookie the identity provider sets on a successful
// express login.
const authCookieName = "JAAuthCookie"

var uuidPattern = regexp.MustCompile(
	`uuid=([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})`)

// SessionUUID fetches the profile page and extracts the session UUID the
// express login exchange requires.
func (c *Client) SessionUUID(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.profileURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("video: reading profile page: %w", err)
	}

	matches := uuidPattern.FindSubmatch(body)
	if matches == nil {
		return "", ErrNoSessionUUID
	}

	return string(matches[1]), nil
}

// ExpressLogin exchanges a session UUID for the identity provider's auth
// cookie. The exchange response sets the cookie into the shared jar; its
// value is returned for the caller to persist.
func (c *Client) ExpressLogin(ctx context.Context, sessionUUID string) (string, error) {
	resp, err := c.get(ctx, c.expressURL+"?uuid="+sessionUUID)
	if err != nil {
		return "", err
	}

	resp.Body.Close()

	cookie, ok := c.store.CookieValue(c.authURL, authCookieName)
	if !ok {
		return "", ErrNoAuthCookie
	}

	c.logger.Debug("express login succeeded")

	return cookie, nil
}

// Login seeds the jar with the identity provider cookie and requests the
// platform's login endpoint. If the final resolved domain is still the
// identity provider's, the login was rejected; otherwise the platform's
// session cookies are returned as a raw cookie string.
func (c *Client) Login(ctx context.Context, authCookie string) (string, error) {
	if err := c.store.AddCookieString(authCookie, c.authURL); err != nil {
		return "", err
	}

	resp, err := c.get(ctx, c.loginURL)
	if err != nil {
		return "", err
	}

	resp.Body.Close()

	// Redirect chains end back at the identity provider when the cookie
	// was not accepted.
	if resp.Request.URL.Hostname() == c.authHost {
		return "", ErrLoginRejected
	}

	cookies, ok := c.store.CookieHeader(c.baseURL)
	if !ok {
		return "", ErrNoCookies
	}

	c.logger.Info("video platform login succeeded",
		slog.String("final_host", resp.Request.URL.Hostname()),
	)

	return cookies, nil
}
