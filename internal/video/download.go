package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
)

// downloadWindow is the byte range requested per iteration of a video
// download.
const downloadWindow = 4 * 1024 * 1024

// Download streams one video to savePath using range requests of a fixed
// window. A zero-length probe discovers the total size first (an absent
// Content-Range header means unknown size, not an error). A response
// shorter than the requested window terminates the loop, even short of the
// probed size: the CDN does not distinguish transient short reads from EOF,
// and the lenient behavior is kept. One progress report is emitted per
// iteration, plus an initial zero report.
func (c *Client) Download(ctx context.Context, play *PlayInfo, savePath string, report progress.Func) error {
	out, err := os.Create(savePath)
	if err != nil {
		return fmt.Errorf("video: creating %s: %w", savePath, err)
	}
	defer out.Close()

	streamURL := play.RtmpURLHdv

	total, err := c.probeSize(ctx, streamURL)
	if err != nil {
		return err
	}

	payload := progress.Payload{ID: strconv.FormatInt(play.ID, 10), Total: total}
	report.Report(payload)

	var offset int64

	for {
		data, err := c.fetchRange(ctx, streamURL, offset, offset+downloadWindow)
		if err != nil {
			return err
		}

		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("video: writing %s: %w", savePath, err)
		}

		read := int64(len(data))
		offset += read
		payload.Processed += read
		report.Report(payload)

		if read < downloadWindow {
			break
		}
	}

	c.logger.Debug("video downloaded",
		slog.String("path", savePath),
		slog.Int64("bytes", offset),
	)

	return nil
}

// fetchRange requests bytes [begin, end] of the stream and returns the body.
func (c *Client) fetchRange(ctx context.Context, rawURL string, begin, end int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("video: creating range request: %w", err)
	}

	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", begin, end))
	req.Header.Set("Referer", "https://courses.sjtu.edu.cn")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video: range request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		c.logger.Error("unexpected range response status",
			slog.Int("status", resp.StatusCode),
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("video: reading range response: %w", err)
	}

	return data, nil
}

// probeSize issues a zero-length range request and reads the total size from
// the Content-Range header. A missing or malformed header yields zero.
func (c *Client) probeSize(ctx context.Context, rawURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("video: creating probe request: %w", err)
	}

	req.Header.Set("Range", "bytes=0-0")
	req.Header.Set("Referer", "https://courses.sjtu.edu.cn")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("video: probe request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return 0, fmt.Errorf("video: draining probe response: %w", err)
	}

	// "bytes 0-0/12345": the size follows the slash.
	contentRange := resp.Header.Get("Content-Range")

	_, sizePart, found := strings.Cut(contentRange, "/")
	if !found {
		return 0, nil
	}

	size, err := strconv.ParseInt(sizePart, 10, 64)
	if err != nil {
		return 0, nil
	}

	return size, nil
}
