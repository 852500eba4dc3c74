// Package debug provides optional file-based debug logging.
//
// When the INTERACTOR_DEBUG environment variable is set to a file path,
// FromEnv returns a logger appending to that file. Otherwise logging is off.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// EnvVar names the environment variable read by FromEnv.
const EnvVar = "INTERACTOR_DEBUG"

// Open returns a text logger appending to path at the given level. The
// returned closer closes the file.
// If path is empty, uses "debug.log" in the current directory.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

// FromEnv opens the file named by INTERACTOR_DEBUG at debug level.
// It returns a nil logger and closer when the variable is unset.
func FromEnv() (*slog.Logger, io.Closer, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, nil, nil
	}
	return Open(path, slog.LevelDebug)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
