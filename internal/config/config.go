// Package config loads run settings for the hashlife command from YAML files
// and flag-style key/value overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"hashlife/internal/core"
	"hashlife/internal/pattern"
)

const (
	// MaxFileSize caps the size of a config file.
	MaxFileSize = 1 << 20

	// MaxWindowSide caps each side of the printed window.
	MaxWindowSide = 4096
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window is the rectangle of world cells reported after a run.
type Window struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Config holds the settings of one run.
type Config struct {
	// Pattern names a catalog entry. PatternText, when set, takes precedence.
	Pattern     string `yaml:"pattern"`
	PatternText string `yaml:"pattern_text"`

	Generations int64  `yaml:"generations"`
	Window      Window `yaml:"window"`
	LogLevel    string `yaml:"log_level"`

	// VerifyMargin is extra dead padding around the reference board used by
	// verify, on top of the generation count.
	VerifyMargin int `yaml:"verify_margin"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Pattern:      "glider",
		Generations:  0,
		Window:       Window{X: -16, Y: -8, W: 48, H: 24},
		LogLevel:     "info",
		VerifyMargin: 2,
	}
}

// Load reads and validates a YAML config file. Keys missing from the file
// keep their defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return Config{}, fmt.Errorf("config %s exceeds %d bytes: %w", path, MaxFileSize, ErrInvalid)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromMap applies flag-style key/value pairs on top of c. Values that do not
// parse are ignored.
func (c Config) FromMap(cfg map[string]string) Config {
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = v
	}
	if v, ok := cfg["generations"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			c.Generations = parsed
		}
	}
	if v, ok := cfg["window"]; ok {
		if w, err := ParseWindow(v); err == nil {
			c.Window = w
		}
	}
	if v, ok := cfg["log_level"]; ok {
		if _, err := parseLevel(v); err == nil {
			c.LogLevel = v
		}
	}
	if v, ok := cfg["verify_margin"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.VerifyMargin = parsed
		}
	}
	return c
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Pattern == "" && c.PatternText == "" {
		return fmt.Errorf("no pattern: %w", ErrInvalid)
	}
	if c.Generations < 0 {
		return fmt.Errorf("generations %d: %w", c.Generations, ErrInvalid)
	}
	if c.Window.W <= 0 || c.Window.H <= 0 || c.Window.W > MaxWindowSide || c.Window.H > MaxWindowSide {
		return fmt.Errorf("window %dx%d: %w", c.Window.W, c.Window.H, ErrInvalid)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.VerifyMargin < 0 {
		return fmt.Errorf("verify margin %d: %w", c.VerifyMargin, ErrInvalid)
	}
	return nil
}

// Seed resolves the configured starting pattern.
func (c Config) Seed() (*core.Grid, error) {
	if c.PatternText != "" {
		return pattern.Parse(c.PatternText)
	}
	return pattern.Lookup(c.Pattern)
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, ErrInvalid)
}

// ParseWindow decodes "x,y,w,h".
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Window{}, fmt.Errorf("window %q: want x,y,w,h: %w", s, ErrInvalid)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Window{}, fmt.Errorf("window %q: %w", s, ErrInvalid)
		}
		v[i] = n
	}
	return Window{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}
