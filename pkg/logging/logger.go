// Package logging configures log/slog for the overlay service: a server log
// mirrored to the console and the in-memory capture, and a separate request
// log. Files from the previous run are kept as .old.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"reticlego/pkg/config"
)

// RequestLogger receives one line per HTTP request.
var RequestLogger = slog.Default()

// Init installs the server logger as the slog default and opens the request
// logger. The returned func closes both files.
func Init(cfg *config.LogConfig) (func(), error) {
	rotate(cfg.Server.Path, cfg.Requests.Path)
	SetTrace(cfg.Trace)

	serverFile, err := openLog(cfg.Server.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open server log: %w", err)
	}
	requestFile, err := openLog(cfg.Requests.Path)
	if err != nil {
		serverFile.Close()
		return nil, fmt.Errorf("failed to open request log: %w", err)
	}

	level := parseLevel(cfg.Server.Level)
	slog.SetDefault(slog.New(fanout{
		newHandler(serverFile, level, level == slog.LevelDebug),
		newHandler(os.Stdout, max(level, slog.LevelInfo), false),
		newHandler(Latest, slog.LevelInfo, false),
	}))
	RequestLogger = slog.New(newHandler(requestFile, parseLevel(cfg.Requests.Level), false))

	return func() {
		_ = errors.Join(serverFile.Close(), requestFile.Close())
	}, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newHandler(w io.Writer, level slog.Level, source bool) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: source})
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// rotate renames each existing log to <path>.old, replacing an older one.
func rotate(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = os.Remove(p + ".old")
		_ = os.Rename(p, p+".old")
	}
}

// fanout hands each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Handler takes the record by value
func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
