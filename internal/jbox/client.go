package jbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/session"
)

// Production endpoints. Unexported fields on Client so tests can point a
// client at local servers.
const (
	defaultBaseURL   = "https://pan.sjtu.edu.cn"
	defaultLoginURL  = "https://pan.sjtu.edu.cn/user/v1/sign-in/sso-login-redirect/xpw8ou8y"
	defaultVerifyURL = "https://pan.sjtu.edu.cn/user/v1/sign-in/verify-account-login/xpw8ou8y?device_id=Chrome+116.0.0.0&type=sso&credential="
	defaultSpaceURL  = "https://pan.sjtu.edu.cn/user/v1/space/1/personal"
	defaultAuthURL   = "https://jaccount.sjtu.edu.cn"
)

// userTokenLength is the fixed width of a valid user token; anything else
// means the exchange failed.
const userTokenLength = 128

// codePattern extracts the one-time code from the login redirect's final URL.
var codePattern = regexp.MustCompile(`code=(.+?)&state=`)

// Client talks to the JBox storage service. Login rides on the shared
// session jar; everything after login is token authenticated.
type Client struct {
	baseURL   string
	loginURL  string
	verifyURL string
	spaceURL  string
	authURL   string

	store      *session.Store
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a JBox client. httpClient must use the store's jar so
// the SSO redirect can pick up the identity provider cookie.
func NewClient(store *session.Store, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    defaultBaseURL,
		loginURL:   defaultLoginURL,
		verifyURL:  defaultVerifyURL,
		spaceURL:   defaultSpaceURL,
		authURL:    defaultAuthURL,
		store:      store,
		httpClient: httpClient,
		logger:     logger,
	}
}

// LoginInfo identifies the caller's personal space for upload operations.
type LoginInfo struct {
	LibraryID   string
	SpaceID     string
	AccessToken string
}

type loginResult struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	UserToken string `json:"userToken"`
}

// SpaceInfo is the personal-space response: the library/space pair and the
// access token every storage operation needs.
type SpaceInfo struct {
	Status      int    `json:"status"`
	Message     string `json:"message"`
	LibraryID   string `json:"libraryId"`
	SpaceID     string `json:"spaceId"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Info converts the space response into the LoginInfo uploads consume.
func (s *SpaceInfo) Info() *LoginInfo {
	return &LoginInfo{
		LibraryID:   s.LibraryID,
		SpaceID:     s.SpaceID,
		AccessToken: s.AccessToken,
	}
}

// Login seeds the jar with the identity provider cookie, follows the SSO
// login redirect, extracts the one-time code from the final resolved URL,
// and exchanges it for a user token. The token must be exactly 128
// characters wide and the exchange status must be zero; any mismatch is a
// hard failure.
func (c *Client) Login(ctx context.Context, authCookie string) (string, error) {
	if err := c.store.AddCookieString(authCookie, c.authURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.loginURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("jbox: creating login request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("jbox: login redirect: %w", err)
	}

	finalURL := resp.Request.URL.String()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		resp.Body.Close()

		return "", fmt.Errorf("jbox: draining login response: %w", err)
	}

	resp.Body.Close()

	matches := codePattern.FindStringSubmatch(finalURL)
	if matches == nil {
		return "", fmt.Errorf("%w: no code in redirect target", ErrLogin)
	}

	var result loginResult
	if err := c.postJSON(ctx, c.verifyURL+matches[1], "", &result); err != nil {
		return "", err
	}

	if result.Status != 0 || len(result.UserToken) != userTokenLength {
		return "", fmt.Errorf("%w: status %d, token length %d", ErrLogin, result.Status, len(result.UserToken))
	}

	c.logger.Info("jbox login succeeded")

	return result.UserToken, nil
}

// GetSpaceInfo exchanges a user token for the caller's personal space
// coordinates.
func (c *Client) GetSpaceInfo(ctx context.Context, userToken string) (*SpaceInfo, error) {
	var info SpaceInfo
	if err := c.postJSON(ctx, c.spaceURL+"?user_token="+userToken, "", &info); err != nil {
		return nil, err
	}

	if info.Status != 0 {
		c.logger.Error("space info request failed",
			slog.Int("status", info.Status),
			slog.String("message", info.Message),
		)

		return nil, &ServiceError{Status: info.Status, Message: info.Message}
	}

	return &info, nil
}

// postJSON issues a POST with the given raw body and decodes the JSON
// response into out.
func (c *Client) postJSON(ctx context.Context, rawURL, body string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("jbox: creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jbox: POST %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			errBody = []byte("(failed to read response body)")
		}

		return &HTTPError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jbox: decoding response: %w", err)
	}

	return nil
}
