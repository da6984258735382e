package jbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
)

const (
	// uploadChunkSize is the fixed chunk width for multipart uploads; the
	// final chunk may be shorter.
	uploadChunkSize = 4 * 1024 * 1024

	// chunkRetryLimit is how many times a failed chunk is retried before
	// the upload aborts. There is no backoff between attempts.
	chunkRetryLimit = 3

	// codeDirectoryExists is the one service code directory creation
	// tolerates as success.
	codeDirectoryExists = "SameNameDirectoryOrFileExists"
)

// ChunkCount returns ceil(size / chunk size): the number of chunks an
// upload of size bytes is split into.
func ChunkCount(size int64) int {
	if size%uploadChunkSize == 0 {
		return int(size / uploadChunkSize)
	}

	return int(size/uploadChunkSize) + 1
}

// chunkHeaders are the pre-signed headers the upload context issues per
// chunk index; each chunk PUT must replay its own set verbatim.
type chunkHeaders struct {
	XAmzDate          string `json:"x-amz-date"`
	Authorization     string `json:"authorization"`
	XAmzContentSHA256 string `json:"x-amz-content-sha256"`
}

type chunkPart struct {
	Headers chunkHeaders `json:"headers"`
}

// UploadContext is the server-issued session for one multipart upload.
// Exactly one context is live per in-flight upload; it is discarded after
// confirmation. Parts is keyed by the decimal 1-based chunk index and only
// indices declared at creation may be uploaded.
type UploadContext struct {
	Domain     string               `json:"domain"`
	Path       string               `json:"path"`
	UploadID   string               `json:"uploadId"`
	Parts      map[string]chunkPart `json:"parts"`
	ConfirmKey string               `json:"confirmKey"`
}

type confirmResult struct {
	CRC64 string `json:"crc64"`
}

type directoryResult struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EnsureDirectory creates dirPath in the caller's space. A response with
// the "directory already exists" code counts as success; every other
// non-zero status propagates as a ServiceError.
func (c *Client) EnsureDirectory(ctx context.Context, dirPath string, info *LoginInfo) error {
	rawURL := fmt.Sprintf("%s/api/v1/directory/%s/%s/%s?conflict_resolution_strategy=ask&access_token=%s",
		c.baseURL, info.LibraryID, info.SpaceID, dirPath, info.AccessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("jbox: creating directory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jbox: creating directory: %w", err)
	}
	defer resp.Body.Close()

	var result directoryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("jbox: decoding directory response: %w", err)
	}

	if result.Status != 0 && result.Code != codeDirectoryExists {
		return &ServiceError{Status: result.Status, Code: result.Code, Message: result.Message}
	}

	return nil
}

// StartChunkUpload opens a multipart upload session for remotePath,
// declaring the full 1..chunkCount index set.
func (c *Client) StartChunkUpload(ctx context.Context, remotePath string, chunkCount int, info *LoginInfo) (*UploadContext, error) {
	rawURL := fmt.Sprintf("%s/api/v1/file/%s/%s/%s?multipart=null&conflict_resolution_strategy=rename&access_token=%s",
		c.baseURL, info.LibraryID, info.SpaceID, remotePath, info.AccessToken)

	indices := make([]int, chunkCount)
	for i := range indices {
		indices[i] = i + 1
	}

	body, err := json.Marshal(map[string]any{"partNumberRange": indices})
	if err != nil {
		return nil, fmt.Errorf("jbox: marshaling chunk plan: %w", err)
	}

	var uctx UploadContext
	if err := c.postJSON(ctx, rawURL, string(body), &uctx); err != nil {
		return nil, err
	}

	c.logger.Debug("chunk upload session started",
		slog.String("upload_id", uctx.UploadID),
		slog.Int("chunks", chunkCount),
	)

	return &uctx, nil
}

// uploadChunk submits one chunk with the headers the context pre-signed for
// its index.
func (c *Client) uploadChunk(ctx context.Context, uctx *UploadContext, data []byte, partNumber int) error {
	part, ok := uctx.Parts[strconv.Itoa(partNumber)]
	if !ok {
		return &ServiceError{Message: fmt.Sprintf("no signed headers for part %d", partNumber)}
	}

	rawURL := fmt.Sprintf("https://%s%s?uploadId=%s&partNumber=%d",
		uctx.Domain, uctx.Path, uctx.UploadID, partNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("jbox: creating chunk request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("x-amz-date", part.Headers.XAmzDate)
	req.Header.Set("authorization", part.Headers.Authorization)
	req.Header.Set("x-amz-content-sha256", part.Headers.XAmzContentSHA256)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jbox: uploading chunk %d: %w", partNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			errBody = []byte("(failed to read response body)")
		}

		return &HTTPError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("jbox: draining chunk response: %w", err)
	}

	c.logger.Debug("chunk uploaded", slog.Int("part", partNumber))

	return nil
}

// uploadChunkWithRetry retries transport and HTTP failures for one chunk up
// to the retry budget, then surfaces the last error. No partial-success
// state survives an exhausted budget; the caller aborts the whole upload.
func (c *Client) uploadChunkWithRetry(ctx context.Context, uctx *UploadContext, data []byte, partNumber int) error {
	var err error

	for attempt := 0; ; attempt++ {
		err = c.uploadChunk(ctx, uctx, data, partNumber)
		if err == nil || attempt == chunkRetryLimit {
			return err
		}

		c.logger.Warn("retrying chunk upload",
			slog.Int("part", partNumber),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()),
		)
	}
}

// confirmUpload finalizes the remote object once every declared chunk has
// been acknowledged. Confirmation failure is terminal: the object stays
// incomplete server-side and a retry restarts the whole upload.
func (c *Client) confirmUpload(ctx context.Context, confirmKey string, info *LoginInfo) error {
	rawURL := fmt.Sprintf("%s/api/v1/file/%s/%s/%s?confirm=null&conflict_resolution_strategy=rename&access_token=%s",
		c.baseURL, info.LibraryID, info.SpaceID, confirmKey, info.AccessToken)

	var result confirmResult
	if err := c.postJSON(ctx, rawURL, "", &result); err != nil {
		return err
	}

	c.logger.Info("upload confirmed", slog.String("crc64", result.CRC64))

	return nil
}

// Upload moves content into saveDir/name in the caller's space: ensure the
// directory exists, open a chunk session declaring the full plan, upload
// chunks strictly sequentially with per-chunk retry, then confirm. Progress
// is reported after each successful chunk with that chunk's exact length,
// keyed by id.
func (c *Client) Upload(ctx context.Context, id string, content []byte, saveDir, name string, info *LoginInfo, report progress.Func) error {
	if err := c.EnsureDirectory(ctx, saveDir, info); err != nil {
		return err
	}

	total := int64(len(content))
	chunkCount := ChunkCount(total)
	remotePath := path.Join(saveDir, name)

	uctx, err := c.StartChunkUpload(ctx, remotePath, chunkCount, info)
	if err != nil {
		return err
	}

	payload := progress.Payload{ID: id, Total: total}

	for partNumber := 1; partNumber <= chunkCount; partNumber++ {
		start := int64(partNumber-1) * uploadChunkSize
		end := min(start+uploadChunkSize, total)

		if err := c.uploadChunkWithRetry(ctx, uctx, content[start:end], partNumber); err != nil {
			return err
		}

		payload.Processed += end - start
		report.Report(payload)
	}

	return c.confirmUpload(ctx, uctx.ConfirmKey, info)
}
