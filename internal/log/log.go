// Package log provides centralized logging for the language server and CLI tools.
//
// Logging is off until SetOutput is called. The LSP speaks JSON-RPC over
// stdout, so nothing here ever defaults to os.Stdout.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// SetOutput directs log records to w at the given level ("debug", "info",
// "warn" or "error"). Pass a nil writer to disable logging.
func SetOutput(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		logger = nil
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// enabled reports whether a log output is set.
func enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

func emit(level slog.Level, component, msg string, args []any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return
	}
	l.With("component", component).Log(context.Background(), level, msg, args...)
}

// Server writes a debug record for the LSP server.
func Server(msg string, args ...any) {
	emit(slog.LevelDebug, "server", msg, args)
}

// Catalog writes an info record for catalog loading.
func Catalog(msg string, args ...any) {
	emit(slog.LevelInfo, "catalog", msg, args)
}

// Decor writes a debug record for decoration scans.
func Decor(msg string, args ...any) {
	emit(slog.LevelDebug, "decorate", msg, args)
}

// Tool writes an info record for the offline tools (combine, convert, generate).
func Tool(msg string, args ...any) {
	emit(slog.LevelInfo, "tool", msg, args)
}

// Warn writes a warning record for any component.
func Warn(component, msg string, args ...any) {
	emit(slog.LevelWarn, component, msg, args)
}

// Error writes an error record for any component.
func Error(component, msg string, args ...any) {
	emit(slog.LevelError, component, msg, args)
}
