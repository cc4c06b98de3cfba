package instance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/observability"
	"github.com/simpleflo/codeserver/pkg/models"
)

// OpenRequest asks a running instance to open paths.
type OpenRequest struct {
	Type             string   `json:"type"`
	FolderURIs       []string `json:"folderURIs"`
	FileURIs         []string `json:"fileURIs"`
	ForceReuseWindow bool     `json:"forceReuseWindow"`
	ForceNewWindow   bool     `json:"forceNewWindow"`
}

// NewOpenRequest builds an open request from the explicit command line
// record. Positional paths are made absolute and split into folders and
// files.
func NewOpenRequest(a *args.Args) (OpenRequest, error) {
	req := OpenRequest{
		Type:             "open",
		FolderURIs:       []string{},
		FileURIs:         []string{},
		ForceReuseWindow: a.Bool(args.OptReuseWindow),
		ForceNewWindow:   a.Bool(args.OptNewWindow),
	}

	for _, p := range a.Positional {
		abs, err := filepath.Abs(p)
		if err != nil {
			return OpenRequest{}, fmt.Errorf("resolve %s: %w", p, err)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			req.FolderURIs = append(req.FolderURIs, abs)
		} else {
			req.FileURIs = append(req.FileURIs, abs)
		}
	}

	if req.ForceNewWindow && len(req.FileURIs) > 0 {
		return OpenRequest{}, models.NewError(models.ErrMissingValue, "--new-window can only be used with folder paths")
	}
	if len(req.FolderURIs) == 0 && len(req.FileURIs) == 0 {
		return OpenRequest{}, models.NewError(models.ErrMissingValue, "Please specify at least one file or folder")
	}
	return req, nil
}

// Client talks HTTP to a running instance over its unix socket.
type Client struct {
	httpClient *http.Client
	baseURL    string
	socketPath string
}

// NewClient returns a client for the instance listening on socketPath.
func NewClient(socketPath string) *Client {
	return NewClientWithTimeout(socketPath, 30*time.Second)
}

// NewClientWithTimeout is NewClient with a custom request timeout.
func NewClientWithTimeout(socketPath string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				// One request per invocation; nothing to keep alive.
				DisableKeepAlives: true,
				DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
					var d net.Dialer
					return d.DialContext(ctx, "unix", socketPath)
				},
			},
			Timeout: timeout,
		},
		baseURL:    "http://localhost",
		socketPath: socketPath,
	}
}

// Open forwards req to the running instance.
func (c *Client) Open(ctx context.Context, req OpenRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode open request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build open request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.Wrap(models.ErrInstanceUnavailable, "cannot reach running instance at "+c.socketPath, err).
			WithDetails("socket", c.socketPath)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Errorf(models.ErrInstanceUnavailable, "running instance rejected open request: %s %s",
			resp.Status, strings.TrimSpace(string(body))).
			WithDetails("socket", c.socketPath).
			WithDetails("status", resp.StatusCode)
	}

	observability.LogEvent(observability.Logger("instance"), observability.EventOpenForwarded, map[string]interface{}{
		"socket":  c.socketPath,
		"folders": len(req.FolderURIs),
		"files":   len(req.FileURIs),
	})
	return nil
}
