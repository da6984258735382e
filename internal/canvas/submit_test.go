package canvas

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestUploadSubmissionFile(t *testing.T) {
	path := writeTestFile(t, "homework.pdf", "homework content")

	var c *Client

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/courses/12/assignments/34/submissions/self/files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "homework.pdf", r.PostForm.Get("name"))
		assert.Equal(t, "16", r.PostForm.Get("size"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		writeJSON(t, w, submissionUploadResponse{
			UploadURL:    c.baseURL + "/storage/upload",
			UploadParams: map[string]string{"key": "signed-key", "policy": "signed-policy"},
		})
	})

	mux.HandleFunc("POST /storage/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		assert.Equal(t, "signed-key", r.MultipartForm.Value["key"][0])
		assert.Equal(t, "signed-policy", r.MultipartForm.Value["policy"][0])
		assert.Empty(t, r.Header.Get("Authorization"), "the storage endpoint is authenticated by the signed params")

		part, err := r.MultipartForm.File["file"][0].Open()
		require.NoError(t, err)
		defer part.Close()

		content, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, "homework content", string(content))

		writeJSON(t, w, File{ID: 42, DisplayName: "homework.pdf"})
	})

	c = newTestClient(t, mux)

	uploaded, err := c.UploadSubmissionFile(context.Background(), 12, 34, path, "homework.pdf", "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(42), uploaded.ID)
}

func TestUploadSubmissionFile_Rejected(t *testing.T) {
	path := writeTestFile(t, "big.bin", "content")

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, submissionUploadResponse{Message: "file size exceeds quota"})
	}))

	_, err := c.UploadSubmissionFile(context.Background(), 12, 34, path, "big.bin", "tok")
	require.ErrorIs(t, err, ErrSubmissionRejected)
	assert.Contains(t, err.Error(), "file size exceeds quota")
}

func TestUploadSubmissionFile_MissingFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected when the local file is missing")
	}))

	_, err := c.UploadSubmissionFile(context.Background(), 12, 34, "/nonexistent/file.pdf", "file.pdf", "tok")
	assert.Error(t, err)
}

func TestSubmitAssignment(t *testing.T) {
	first := writeTestFile(t, "part1.pdf", "one")
	second := writeTestFile(t, "part2.pdf", "two")

	var (
		c         *Client
		uploads   int
		submitted bool
	)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/courses/12/assignments/34/submissions/self/files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, submissionUploadResponse{
			UploadURL:    c.baseURL + "/storage/upload",
			UploadParams: map[string]string{},
		})
	})

	mux.HandleFunc("POST /storage/upload", func(w http.ResponseWriter, _ *http.Request) {
		uploads++

		writeJSON(t, w, File{ID: int64(100 + uploads)})
	})

	mux.HandleFunc("POST /api/v1/courses/12/assignments/34/submissions", func(w http.ResponseWriter, r *http.Request) {
		submitted = true

		require.NoError(t, r.ParseForm())

		assert.Equal(t, "online_upload", r.PostForm.Get("submission[submission_type]"))
		assert.Equal(t, []string{"101", "102"}, r.PostForm["submission[file_ids][]"])
		assert.Equal(t, "late, sorry", r.PostForm.Get("comment[text_comment]"))

		writeJSON(t, w, Submission{ID: 1})
	})

	c = newTestClient(t, mux)

	err := c.SubmitAssignment(context.Background(), 12, 34, []string{first, second}, "late, sorry", "tok")
	require.NoError(t, err)

	assert.Equal(t, 2, uploads)
	assert.True(t, submitted)
}

func TestSubmitAssignment_NoComment(t *testing.T) {
	path := writeTestFile(t, "only.pdf", "content")

	var c *Client

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/courses/1/assignments/2/submissions/self/files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, submissionUploadResponse{
			UploadURL:    c.baseURL + "/storage/upload",
			UploadParams: map[string]string{},
		})
	})

	mux.HandleFunc("POST /storage/upload", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, File{ID: 9})
	})

	mux.HandleFunc("POST /api/v1/courses/1/assignments/2/submissions", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.NotContains(t, r.PostForm, "comment[text_comment]")

		writeJSON(t, w, Submission{ID: 1})
	})

	c = newTestClient(t, mux)

	require.NoError(t, c.SubmitAssignment(context.Background(), 1, 2, []string{path}, "", "tok"))
}
