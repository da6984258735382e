package canvas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/paging"
)

// DefaultBaseURL is the production Canvas instance.
const DefaultBaseURL = "https://oc.sjtu.edu.cn"

// listPageSize is the per_page value for paginated listing requests, the
// maximum Canvas allows.
const listPageSize = 100

// Client is an HTTP client for the Canvas LMS REST API. Credentials are not
// cached: every operation takes the caller's bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Canvas API client. baseURL is typically
// DefaultBaseURL; httpClient should share the session cookie jar with the
// other service clients.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// do executes one request against the API. path is appended to the base URL
// unless it is already absolute. Non-2xx responses are drained and returned
// as *APIError; on success the caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, token string) (*http.Response, error) {
	target := path
	if !strings.HasPrefix(target, "http") {
		target = c.baseURL + path
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}

		target += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("canvas: creating request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("canvas: %s %s: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if readErr != nil {
			errBody = []byte("(failed to read response body)")
		}

		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(errBody),
			Err:        classifyStatus(resp.StatusCode),
		}
	}

	return resp, nil
}

// get issues an authenticated GET request.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "", token)
}

// postForm issues an authenticated POST with a form-encoded body.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, token string) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", token)
}

// putForm issues an authenticated PUT with a form-encoded body.
func (c *Client) putForm(ctx context.Context, path string, form url.Values, token string) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, nil,
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", token)
}

// delete issues an authenticated DELETE and drains the response.
func (c *Client) delete(ctx context.Context, path, token string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil, "", token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)
	if err != nil {
		return fmt.Errorf("canvas: draining response body: %w", err)
	}

	return nil
}

// getJSON fetches path and decodes the JSON response into a value of type T.
// Methods cannot be generic, so the JSON helpers are package functions
// taking the client as their first argument.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values, token string) (T, error) {
	var out T

	resp, err := c.get(ctx, path, query, token)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("canvas: decoding response for %s: %w", path, err)
	}

	return out, nil
}

// listPage fetches one page of a paginated listing.
func listPage[T any](ctx context.Context, c *Client, path string, query url.Values, token string, page int) ([]T, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}

	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(listPageSize))

	return getJSON[[]T](ctx, c, path, q, token)
}

// listAll fetches every page of a listing, stopping on the first empty page.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values, token string) ([]T, error) {
	return paging.Collect(ctx, func(ctx context.Context, page int) ([]T, error) {
		return listPage[T](ctx, c, path, query, token, page)
	})
}
