package debug

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	logger, closer, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "k", 1)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Errorf("debug record written at info level: %q", got)
	}
	if !strings.Contains(got, "msg=shown") || !strings.Contains(got, "k=1") {
		t.Errorf("log = %q, want the info record", got)
	}
}

func TestFromEnv_Unset(t *testing.T) {
	t.Setenv(EnvVar, "")

	logger, closer, err := FromEnv()
	if err != nil || logger != nil || closer != nil {
		t.Errorf("FromEnv() = %v, %v, %v; want all nil", logger, closer, err)
	}
}

func TestParseLevel(t *testing.T) {
	type tc struct {
		input   string
		want    slog.Level
		wantErr bool
	}

	tests := map[string]tc{
		"debug":      {input: "debug", want: slog.LevelDebug},
		"empty":      {input: "", want: slog.LevelInfo},
		"upper warn": {input: "WARN", want: slog.LevelWarn},
		"error":      {input: "error", want: slog.LevelError},
		"bogus":      {input: "loud", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
