package jbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
)

func TestChunkCount(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want int
	}{
		{"empty", 0, 0},
		{"one byte", 1, 1},
		{"exactly one chunk", uploadChunkSize, 1},
		{"one byte over", uploadChunkSize + 1, 2},
		{"exactly two chunks", 2 * uploadChunkSize, 2},
		{"ten mebibytes", 10 * 1024 * 1024, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkCount(tt.size))
		})
	}
}

func testLoginInfo() *LoginInfo {
	return &LoginInfo{LibraryID: "smh-lib", SpaceID: "space-1", AccessToken: "access-token"}
}

// testChunkParts builds the signed header set for parts 1..count.
func testChunkParts(count int) map[string]chunkPart {
	parts := make(map[string]chunkPart, count)

	for i := 1; i <= count; i++ {
		parts[strconv.Itoa(i)] = chunkPart{Headers: chunkHeaders{
			XAmzDate:          fmt.Sprintf("date-%d", i),
			Authorization:     fmt.Sprintf("sig-%d", i),
			XAmzContentSHA256: "UNSIGNED-PAYLOAD",
		}}
	}

	return parts
}

func TestEnsureDirectory(t *testing.T) {
	tests := []struct {
		name    string
		result  directoryResult
		wantErr bool
	}{
		{"created", directoryResult{Status: 0}, false},
		{"already exists", directoryResult{Status: 1, Code: codeDirectoryExists}, false},
		{"other failure", directoryResult{Status: 1, Code: "QuotaExceeded", Message: "no space"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/api/v1/directory/smh-lib/space-1/course-files", r.URL.Path)
				assert.Equal(t, "access-token", r.URL.Query().Get("access_token"))

				writeJSON(t, w, tt.result)
			}))

			err := c.EnsureDirectory(context.Background(), "course-files", testLoginInfo())

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			var svcErr *ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, "QuotaExceeded", svcErr.Code)
		})
	}
}

func TestStartChunkUpload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/file/smh-lib/space-1/dir/report.pdf", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "multipart=null")

		var plan struct {
			PartNumberRange []int `json:"partNumberRange"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&plan))
		assert.Equal(t, []int{1, 2, 3}, plan.PartNumberRange, "the full index set is declared up front")

		writeJSON(t, w, UploadContext{
			Domain:     "upload.example.com",
			Path:       "/obj",
			UploadID:   "upload-1",
			Parts:      testChunkParts(3),
			ConfirmKey: "confirm-1",
		})
	})

	c, _ := newTestClient(t, handler)

	uctx, err := c.StartChunkUpload(context.Background(), "dir/report.pdf", 3, testLoginInfo())
	require.NoError(t, err)

	assert.Equal(t, "upload-1", uctx.UploadID)
	assert.Len(t, uctx.Parts, 3)
	assert.Equal(t, "confirm-1", uctx.ConfirmKey)
}

// uploadTestServer wires the full upload surface: directory creation, the
// session opener, chunk PUTs, and confirmation. It records chunk arrival
// order and sizes.
type uploadTestServer struct {
	chunkParts []int
	chunkSizes []int64
	confirms   int
	chunkFails int // leading chunk PUTs to reject with a 500
	attempts   int
}

func (s *uploadTestServer) handler(t *testing.T, chunkCount int, domainPtr *string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/directory/"):
			writeJSON(t, w, directoryResult{Status: 0})

		case strings.HasPrefix(r.URL.Path, "/api/v1/file/") && strings.Contains(r.URL.RawQuery, "multipart=null"):
			writeJSON(t, w, UploadContext{
				Domain:     *domainPtr,
				Path:       "/obj",
				UploadID:   "upload-1",
				Parts:      testChunkParts(chunkCount),
				ConfirmKey: "confirm-1",
			})

		case r.URL.Path == "/obj":
			s.attempts++

			if s.attempts <= s.chunkFails {
				http.Error(w, "backend unavailable", http.StatusInternalServerError)

				return
			}

			part, err := strconv.Atoi(r.URL.Query().Get("partNumber"))
			require.NoError(t, err)

			assert.Equal(t, "upload-1", r.URL.Query().Get("uploadId"))
			assert.Equal(t, fmt.Sprintf("date-%d", part), r.Header.Get("x-amz-date"))
			assert.Equal(t, fmt.Sprintf("sig-%d", part), r.Header.Get("authorization"))
			assert.Equal(t, "UNSIGNED-PAYLOAD", r.Header.Get("x-amz-content-sha256"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)

			s.chunkParts = append(s.chunkParts, part)
			s.chunkSizes = append(s.chunkSizes, int64(len(body)))

			fmt.Fprint(w, "{}")

		case strings.Contains(r.URL.RawQuery, "confirm=null"):
			s.confirms++

			assert.Contains(t, r.URL.Path, "confirm-1")

			writeJSON(t, w, confirmResult{CRC64: "123456"})

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
		}
	})
}

func TestUpload(t *testing.T) {
	content := bytes.Repeat([]byte{0xAB}, 10*1024*1024)

	state := &uploadTestServer{}

	var domain string

	c, srv := newTestClient(t, state.handler(t, 3, &domain))
	domain = strings.TrimPrefix(srv.URL, "https://")

	var reports []progress.Payload

	err := c.Upload(context.Background(), "transfer-1", content, "course-files", "big.bin", testLoginInfo(), func(p progress.Payload) {
		reports = append(reports, p)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, state.chunkParts, "chunks go up strictly in order")
	assert.Equal(t, []int64{uploadChunkSize, uploadChunkSize, 2 * 1024 * 1024}, state.chunkSizes)
	assert.Equal(t, 1, state.confirms)

	total := int64(len(content))

	require.Len(t, reports, 3, "one report per completed chunk")
	assert.Equal(t, progress.Payload{ID: "transfer-1", Processed: uploadChunkSize, Total: total}, reports[0])
	assert.Equal(t, total, reports[2].Processed, "the final report covers the whole payload")
}

func TestUpload_RetriesThenSucceeds(t *testing.T) {
	content := []byte("small payload")

	state := &uploadTestServer{chunkFails: 2}

	var domain string

	c, srv := newTestClient(t, state.handler(t, 1, &domain))
	domain = strings.TrimPrefix(srv.URL, "https://")

	err := c.Upload(context.Background(), "transfer-2", content, "dir", "small.bin", testLoginInfo(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, state.attempts, "two failures then the successful attempt")
	assert.Equal(t, []int{1}, state.chunkParts)
	assert.Equal(t, 1, state.confirms)
}

func TestUpload_RetryExhausted(t *testing.T) {
	content := []byte("doomed payload")

	// More failures than the retry budget covers.
	state := &uploadTestServer{chunkFails: 100}

	var domain string

	c, srv := newTestClient(t, state.handler(t, 1, &domain))
	domain = strings.TrimPrefix(srv.URL, "https://")

	err := c.Upload(context.Background(), "transfer-3", content, "dir", "doomed.bin", testLoginInfo(), nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)

	assert.Equal(t, 1+chunkRetryLimit, state.attempts, "the budget bounds total attempts")
	assert.Zero(t, state.confirms, "a failed upload is never confirmed")
}

func TestUploadChunk_UnknownPart(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for an undeclared part")
	}))

	uctx := &UploadContext{Parts: testChunkParts(1)}

	err := c.uploadChunk(context.Background(), uctx, []byte("data"), 2)
	require.Error(t, err)

	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}
