package canvas

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
)

// progressGranularity is how often the download progress callback fires:
// once per crossed 512 KiB boundary, plus unconditionally on the final byte.
const progressGranularity = 512 * 1024

// copyBufferSize is the read buffer for streaming downloads.
const copyBufferSize = 32 * 1024

// DownloadFile streams a course file into saveDir under its display name,
// writing bytes in arrival order. The progress callback receives strictly
// ordered reports keyed by the file's UUID.
func (c *Client) DownloadFile(ctx context.Context, file *File, token, saveDir string, report progress.Func) error {
	resp, err := c.get(ctx, file.URL, nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	path := filepath.Join(saveDir, file.DisplayName)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("canvas: creating %s: %w", path, err)
	}
	defer out.Close()

	payload := progress.Payload{ID: file.UUID, Total: file.Size}
	buf := make([]byte, copyBufferSize)

	var lastMark int64

	for {
		n, readErr := resp.Body.Read(buf)

		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("canvas: writing %s: %w", path, writeErr)
			}

			payload.Processed += int64(n)

			// Report on each crossed granularity boundary, not on every
			// network chunk, and always on the final byte.
			mark := payload.Processed / progressGranularity
			if mark != lastMark || payload.Processed == payload.Total {
				lastMark = mark

				report.Report(payload)
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return fmt.Errorf("canvas: reading download stream: %w", readErr)
		}
	}

	c.logger.Info("file downloaded",
		slog.String("name", file.DisplayName),
		slog.Int64("bytes", payload.Processed),
	)

	return nil
}

// FileContent fetches a file's full content into memory. The file URL is
// pre-authenticated, so no bearer token is sent.
func (c *Client) FileContent(ctx context.Context, file *File) ([]byte, error) {
	resp, err := c.get(ctx, file.URL, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("canvas: reading file content: %w", err)
	}

	return data, nil
}
