// Package video provides the client for the course video platform:
// SSO-relay login, cookie-authenticated listings, the OAuth-style signed
// video-info endpoint, and range-based video download.
package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/session"
)

// Production endpoints. Unexported fields on Client so tests can point a
// client at local servers.
const (
	defaultBaseURL      = "https://courses.sjtu.edu.cn/app"
	defaultLoginURL     = "https://courses.sjtu.edu.cn/app/oauth/2.0/login?login_type=outer"
	defaultOAuthKeyURL  = "https://courses.sjtu.edu.cn/app/vodvideo/vodVideoPlay.d2j?ssoCheckToken=ssoCheckToken&refreshToken=&accessToken=&userId=&"
	defaultVideoInfoURL = "https://courses.sjtu.edu.cn/app/system/resource/vodVideo/getvideoinfos"
	defaultAuthURL      = "https://jaccount.sjtu.edu.cn"
	defaultProfileURL   = "https://my.sjtu.edu.cn/ui/appmyinfo"
	defaultExpressURL   = "https://jaccount.sjtu.edu.cn/jaccount/expresslogin"
	authHost            = "jaccount.sjtu.edu.cn"
)

// Client talks to the video platform. All endpoints are cookie
// authenticated through the shared session store's jar.
type Client struct {
	baseURL      string
	loginURL     string
	oauthKeyURL  string
	videoInfoURL string
	authURL      string
	profileURL   string
	expressURL   string
	authHost     string

	store      *session.Store
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a video platform client. httpClient must use the
// store's jar so login cookies propagate to subsequent requests.
func NewClient(store *session.Store, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      defaultBaseURL,
		loginURL:     defaultLoginURL,
		oauthKeyURL:  defaultOAuthKeyURL,
		videoInfoURL: defaultVideoInfoURL,
		authURL:      defaultAuthURL,
		profileURL:   defaultProfileURL,
		expressURL:   defaultExpressURL,
		authHost:     authHost,
		store:        store,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// SeedCookies places a raw cookie string into the jar for the platform
// origin, re-seeding a session saved from an earlier login.
func (c *Client) SeedCookies(raw string) error {
	return c.store.AddCookieString(raw, c.baseURL)
}

// get issues a GET request and rejects non-2xx responses.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("video: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video: GET %s: %w", rawURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort read for error message
		resp.Body.Close()

		return nil, fmt.Errorf("video: GET %s: HTTP %d: %s", rawURL, resp.StatusCode, string(body))
	}

	return resp, nil
}

// getJSON fetches rawURL and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("video: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("video: GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort read for error message

		return fmt.Errorf("video: GET %s: HTTP %d: %s", rawURL, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("video: decoding response for %s: %w", rawURL, err)
	}

	return nil
}
