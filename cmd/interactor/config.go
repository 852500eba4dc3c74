package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/grindlemire/go-interactor"
	"github.com/grindlemire/go-interactor/pkg/debug"
)

const configFile = "config.toml"

// config holds CLI settings. Values come from the TOML config file and are
// overridden by flags that were set explicitly.
type config struct {
	Definition string  `toml:"definition"`
	LogFile    string  `toml:"log_file"`
	LogLevel   string  `toml:"log_level"`
	DebugDraw  bool    `toml:"debug_draw"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	OriginX    float64 `toml:"origin_x"`
	OriginY    float64 `toml:"origin_y"`
	Timeout    string  `toml:"timeout"`
}

func defaultConfig() config {
	return config{
		LogLevel: "info",
		Width:    256,
		Height:   256,
		Timeout:  "10s",
	}
}

// defaultConfigPath returns the per-user config location, or "" if the
// platform has none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "interactor", configFile)
}

// loadConfig reads path over the defaults. A missing file at the default
// location is not an error; a missing explicit file is.
func loadConfig(path string, explicit bool) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := c.timeout(); err != nil {
		return err
	}
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative")
	}
	return d, nil
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	config   string
	logFile  string
	logLevel string
	timeout  string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "TOML config file")
	fs.StringVar(&f.logFile, "log", "", "Path to log file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&f.timeout, "timeout", "", "Definition load timeout")
}

// resolve loads the config file and applies explicitly set flags.
func (f *commonFlags) resolve(fs *flag.FlagSet) (config, error) {
	path, explicit := f.config, f.config != ""
	if !explicit {
		path = defaultConfigPath()
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log":
			cfg.LogFile = f.logFile
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "timeout":
			cfg.Timeout = f.timeout
		}
	})
	return cfg, cfg.validate()
}

// setupLogging points the interactor logger at the configured file, or at
// INTERACTOR_DEBUG. The returned closer is never nil.
func setupLogging(cfg config) (io.Closer, error) {
	level, err := debug.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var (
		logger *slog.Logger
		closer io.Closer
	)
	if cfg.LogFile != "" {
		logger, closer, err = debug.Open(cfg.LogFile, level)
	} else {
		logger, closer, err = debug.FromEnv()
	}
	if err != nil {
		return nil, err
	}
	if logger != nil {
		interactor.SetLogger(logger)
	}
	if closer == nil {
		closer = nopCloser{}
	}
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
