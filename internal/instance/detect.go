// Package instance decides whether an invocation belongs to an already
// running code-server and forwards open requests to it.
package instance

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
	"time"

	"github.com/simpleflo/codeserver/internal/args"
	"github.com/simpleflo/codeserver/internal/config"
	"github.com/simpleflo/codeserver/internal/observability"
)

// DefaultProbeTimeout bounds the liveness dial.
const DefaultProbeTimeout = time.Second

// DetectOptions tunes ShouldOpenInExistingInstance.
type DetectOptions struct {
	// ReferencePath is the file holding the running instance's socket
	// path. Defaults to the platform location from config.DefaultPaths.
	ReferencePath string
	// ProbeTimeout defaults to DefaultProbeTimeout.
	ProbeTimeout time.Duration
}

// ShouldOpenInExistingInstance returns the socket path of a running
// instance the invocation should be forwarded to, or "" when a new
// instance should start. cli must be the explicit command line record,
// before any defaults are applied.
func ShouldOpenInExistingInstance(ctx context.Context, cli *args.Args, env config.Environment, opts DetectOptions) (string, error) {
	if env.IPCHook != "" {
		return env.IPCHook, nil
	}

	if opts.ReferencePath == "" {
		opts.ReferencePath = config.DefaultPaths(env).SocketReference
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}

	socketPath, err := readSocketReference(opts.ReferencePath)
	if err != nil {
		return "", err
	}

	logger := observability.Logger("instance")

	if cli.Has(args.OptReuseWindow) || cli.Has(args.OptNewWindow) {
		if socketPath != "" {
			observability.LogEvent(logger, observability.EventInstanceDetected, map[string]interface{}{
				"socket": socketPath,
				"reason": "window flag",
			})
		}
		return socketPath, nil
	}

	if cli.Len() > 0 || len(cli.Positional) == 0 || socketPath == "" {
		return "", nil
	}

	if !canConnect(ctx, socketPath, opts.ProbeTimeout) {
		logger.Debug().Str("socket", socketPath).Msg("running instance not reachable")
		return "", nil
	}

	observability.LogEvent(logger, observability.EventInstanceDetected, map[string]interface{}{
		"socket": socketPath,
		"reason": "paths only",
	})
	return socketPath, nil
}

// readSocketReference reads the socket path written by a running instance.
// A missing file means no instance.
func readSocketReference(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read socket reference %s: %w", path, err)
	}
	return strings.TrimSpace(string(content)), nil
}

// canConnect dials the unix socket once. Any failure, including the
// timeout, counts as unreachable.
func canConnect(ctx context.Context, socketPath string, timeout time.Duration) bool {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
