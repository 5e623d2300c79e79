package store

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/noter/pkg/timeutil"
)

// Defaults mirror the behaviour of the phone app noter grew out of.
const (
	DefaultPath         = "~/.noter.db"
	DefaultWindowSize   = 101
	DefaultExpandStep   = 20
	DefaultThreshold    = 10
	DefaultExportWindow = 15
)

// Config holds the settings shared by every noter surface.
type Config struct {
	Path         string
	WindowSize   int
	ExpandStep   int
	Threshold    int
	Lookback     string
	ExportWindow int
	LogLevel     string
}

// DefaultConfig returns the settings used when no file or environment
// overrides them.
func DefaultConfig() *Config {
	return &Config{
		Path:         DefaultPath,
		WindowSize:   DefaultWindowSize,
		ExpandStep:   DefaultExpandStep,
		Threshold:    DefaultThreshold,
		Lookback:     timeutil.DefaultLookback,
		ExportWindow: DefaultExportWindow,
		LogLevel:     "info",
	}
}

// LoadConfig reads `.noter.yaml` from $NOTER_CONFIG_PATH or the working
// directory, overlaid by NOTER_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("window.size", DefaultWindowSize)
	v.SetDefault("window.expand", DefaultExpandStep)
	v.SetDefault("window.threshold", DefaultThreshold)
	v.SetDefault("overdue.lookback", timeutil.DefaultLookback)
	v.SetDefault("export.window", DefaultExportWindow)
	v.SetDefault("log.level", "info")

	v.SetConfigName(".noter") // .yaml is implicit
	v.SetEnvPrefix("NOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("NOTER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	cfg := &Config{
		Path:         v.GetString("path"),
		WindowSize:   v.GetInt("window.size"),
		ExpandStep:   v.GetInt("window.expand"),
		Threshold:    v.GetInt("window.threshold"),
		Lookback:     v.GetString("overdue.lookback"),
		ExportWindow: v.GetInt("export.window"),
		LogLevel:     v.GetString("log.level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that numeric settings are usable.
func (c *Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("store: window.size must be positive, got %d", c.WindowSize)
	}
	if c.ExpandStep < 1 {
		return fmt.Errorf("store: window.expand must be positive, got %d", c.ExpandStep)
	}
	if c.ExportWindow < 0 {
		return fmt.Errorf("store: export.window must not be negative, got %d", c.ExportWindow)
	}
	if _, _, err := timeutil.ParseWindow(c.Lookback); err != nil {
		return fmt.Errorf("store: overdue.lookback: %w", err)
	}
	return nil
}

// BasePath is Path with a leading ~ expanded.
func (c *Config) BasePath() string {
	if c == nil {
		return ""
	}
	p, err := homedir.Expand(c.Path)
	if err != nil {
		return c.Path
	}
	return p
}

// LookbackDays returns the parsed overdue lookback, falling back to the
// default on a bad value.
func (c *Config) LookbackDays() int {
	days, _, err := timeutil.ParseWindow(c.Lookback)
	if err != nil {
		days, _, _ = timeutil.ParseWindow(timeutil.DefaultLookback)
	}
	return days
}

// Level maps LogLevel onto slog levels; unknown values mean info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
