package video

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/session"
)

// newTestClient builds a video client whose jar-backed http.Client talks to
// a local server. Endpoint fields are repointed by each test.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.New()
	require.NoError(t, err)

	c := NewClient(store, &http.Client{Jar: store.Jar()}, slog.Default())

	return c, srv
}

// writeJSON marshals v into the response.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestSessionUUID(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://jaccount.sjtu.edu.cn/jaccount/expresslogin?uuid=a1b2c3d4-1111-2222-3333-444455556666">login</a>
		</body></html>`)
	}))
	c.profileURL = srv.URL + "/profile"

	uuid, err := c.SessionUUID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4-1111-2222-3333-444455556666", uuid)
}

func TestSessionUUID_Missing(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>no session here</body></html>")
	}))
	c.profileURL = srv.URL + "/profile"

	_, err := c.SessionUUID(context.Background())
	assert.ErrorIs(t, err, ErrNoSessionUUID)
}

func TestExpressLogin(t *testing.T) {
	var gotUUID string

	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUUID = r.URL.Query().Get("uuid")

		http.SetCookie(w, &http.Cookie{Name: "JAAuthCookie", Value: "auth-secret", Path: "/"})
	}))
	c.expressURL = srv.URL + "/jaccount/expresslogin"
	c.authURL = srv.URL

	cookie, err := c.ExpressLogin(context.Background(), "a1b2c3d4-1111-2222-3333-444455556666")
	require.NoError(t, err)

	assert.Equal(t, "auth-secret", cookie)
	assert.Equal(t, "a1b2c3d4-1111-2222-3333-444455556666", gotUUID)
}

func TestExpressLogin_NoCookie(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	c.expressURL = srv.URL + "/jaccount/expresslogin"
	c.authURL = srv.URL

	_, err := c.ExpressLogin(context.Background(), "uuid")
	assert.ErrorIs(t, err, ErrNoAuthCookie)
}

func TestLogin(t *testing.T) {
	var seenAuthCookie string

	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("JAAuthCookie"); err == nil {
			seenAuthCookie = cookie.Value
		}

		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "platform-session", Path: "/"})
	}))
	c.loginURL = srv.URL + "/oauth/login"
	c.authURL = srv.URL
	c.baseURL = srv.URL

	cookies, err := c.Login(context.Background(), "JAAuthCookie=auth-secret")
	require.NoError(t, err)

	assert.Equal(t, "auth-secret", seenAuthCookie, "the identity cookie rides along on the login request")
	assert.Contains(t, cookies, "JSESSIONID=platform-session")
}

func TestLogin_Rejected(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	c.loginURL = srv.URL + "/oauth/login"
	c.authURL = srv.URL
	// The test server's host doubles as the identity provider's, so the
	// "still on the provider after redirects" check fires.
	c.authHost = "127.0.0.1"

	_, err := c.Login(context.Background(), "JAAuthCookie=expired")
	assert.ErrorIs(t, err, ErrLoginRejected)
}

func TestLogin_NoPlatformCookies(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	c.loginURL = srv.URL + "/oauth/login"
	c.authURL = "https://jaccount.example.org"

	_, err := c.Login(context.Background(), "JAAuthCookie=auth-secret")
	assert.ErrorIs(t, err, ErrNoCookies)
}
