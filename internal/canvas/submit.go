package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// submissionUploadResponse is the answer to the upload-preparation call.
// On success it carries the storage upload URL and the signed form
// parameters to replay; on rejection only Message is set.
// See https://canvas.instructure.com/doc/api/file.file_uploads.html.
type submissionUploadResponse struct {
	UploadURL    string            `json:"upload_url"`
	UploadParams map[string]string `json:"upload_params"`
	Message      string            `json:"message"`
}

// UploadSubmissionFile uploads one local file as a submission attachment:
// first the preparation call declaring name and size, then a multipart POST
// of the signed parameters and the file body to the issued URL.
func (c *Client) UploadSubmissionFile(ctx context.Context, courseID, assignmentID int64, filePath, fileName, token string) (*File, error) {
	params, err := c.prepareSubmissionUpload(ctx, courseID, assignmentID, filePath, fileName, token)
	if err != nil {
		return nil, err
	}

	return c.postSubmissionUpload(ctx, params, filePath)
}

func (c *Client) prepareSubmissionUpload(ctx context.Context, courseID, assignmentID int64, filePath, fileName, token string) (*submissionUploadResponse, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("canvas: stat %s: %w", filePath, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("canvas: %s is not a regular file", filePath)
	}

	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions/self/files", courseID, assignmentID)
	form := url.Values{
		"name": {fileName},
		"size": {strconv.FormatInt(info.Size(), 10)},
	}

	resp, err := c.postForm(ctx, path, form, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var prepared submissionUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&prepared); err != nil {
		return nil, fmt.Errorf("canvas: decoding upload preparation response: %w", err)
	}

	if prepared.UploadURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionRejected, prepared.Message)
	}

	return &prepared, nil
}

// postSubmissionUpload replays the signed parameters and the file content as
// one multipart form. The file part must come last; the storage backend
// ignores fields after it.
func (c *Client) postSubmissionUpload(ctx context.Context, params *submissionUploadResponse, filePath string) (*File, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("canvas: reading %s: %w", filePath, err)
	}

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for key, value := range params.UploadParams {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("canvas: writing form field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("canvas: creating file part: %w", err)
	}

	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("canvas: writing file part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvas: finalizing multipart body: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, params.UploadURL, nil, &body, writer.FormDataContentType(), "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var uploaded File
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return nil, fmt.Errorf("canvas: decoding upload response: %w", err)
	}

	return &uploaded, nil
}

// SubmitAssignment uploads the given files and submits them (with an
// optional text comment) as one online_upload submission.
func (c *Client) SubmitAssignment(ctx context.Context, courseID, assignmentID int64, filePaths []string, comment, token string) error {
	fileIDs := make([]int64, 0, len(filePaths))

	for _, filePath := range filePaths {
		uploaded, err := c.UploadSubmissionFile(ctx, courseID, assignmentID, filePath, filepath.Base(filePath), token)
		if err != nil {
			return err
		}

		fileIDs = append(fileIDs, uploaded.ID)
	}

	form := url.Values{}
	form.Set("submission[submission_type]", "online_upload")

	for _, id := range fileIDs {
		form.Add("submission[file_ids][]", strconv.FormatInt(id, 10))
	}

	if comment != "" {
		form.Set("comment[text_comment]", comment)
	}

	path := fmt.Sprintf("/api/v1/courses/%d/assignments/%d/submissions", courseID, assignmentID)

	resp, err := c.postForm(ctx, path, form, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("canvas: draining submission response: %w", err)
	}

	c.logger.Info("assignment submitted",
		slog.Int64("course_id", courseID),
		slog.Int64("assignment_id", assignmentID),
		slog.Int("files", len(fileIDs)),
	)

	return nil
}
