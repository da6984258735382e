package video

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
)

// GetInfo fetches the play info for one video through the signed endpoint,
// deriving the nonce/signature pair for this request.
func (c *Client) GetInfo(ctx context.Context, videoID int64, consumerKey string) (*Info, error) {
	nonce := Nonce()
	signature := Signature(videoID, nonce, consumerKey)

	c.logger.Debug("requesting video info",
		slog.Int64("video_id", videoID),
		slog.String("nonce", nonce),
	)

	form := url.Values{
		"id":              {strconv.FormatInt(videoID, 10)},
		"playTypeHls":     {"true"},
		oauthConstantKey1: {oauthConstantVal1},
		oauthConstantKey2: {oauthConstantVal2},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.videoInfoURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("video: creating info request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("oauth-consumer-key", consumerKey)
	req.Header.Set("oauth-nonce", nonce)
	req.Header.Set("oauth-path", oauthPath)
	req.Header.Set("oauth-signature", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video: fetching video info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort read for error message

		return nil, fmt.Errorf("video: fetching video info: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("video: decoding video info: %w", err)
	}

	return &info, nil
}
