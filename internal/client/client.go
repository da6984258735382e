// Package client is the composition root: one shared session store, an
// http.Client riding its jar, and the three service clients. Transfers that
// cross services live here.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/canvas"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/jbox"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/progress"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/session"
	"github.com/pangbo13/SJTU-Canvas-Helper/internal/video"
)

// Client bundles the three service clients around one cookie store. The
// client imposes no parallelism of its own: callers decide whether to run
// transfers concurrently by invoking it from multiple goroutines. Login
// flows should not run concurrently against the same Client, since they
// interleave writes to the shared jar.
type Client struct {
	store *session.Store

	Canvas *canvas.Client
	Video  *video.Client
	JBox   *jbox.Client
}

// New wires up a Client with a fresh cookie store. No ambient singleton:
// construct one per process and pass it to all call sites.
func New(logger *slog.Logger) (*Client, error) {
	store, err := session.New()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Jar: store.Jar()}

	return &Client{
		store:  store,
		Canvas: canvas.NewClient(canvas.DefaultBaseURL, httpClient, logger),
		Video:  video.NewClient(store, httpClient, logger),
		JBox:   jbox.NewClient(store, httpClient, logger),
	}, nil
}

// Session exposes the shared cookie store, for callers that persist or
// re-seed session cookies.
func (c *Client) Session() *session.Store {
	return c.store
}

// UploadFileToJBox fetches a Canvas file's content and uploads it into
// saveDir in the caller's JBox space. The transfer is tracked under the
// file's UUID, or a fresh one when the listing did not carry one.
func (c *Client) UploadFileToJBox(ctx context.Context, file *canvas.File, saveDir string, info *jbox.LoginInfo, report progress.Func) error {
	content, err := c.Canvas.FileContent(ctx, file)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", file.DisplayName, err)
	}

	id := file.UUID
	if id == "" {
		id = uuid.NewString()
	}

	return c.JBox.Upload(ctx, id, content, saveDir, file.DisplayName, info, report)
}
