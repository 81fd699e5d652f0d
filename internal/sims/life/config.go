package life

import "strconv"

// Soup selects a random starting board instead of a catalog pattern.
const Soup = "soup"

// Config controls the Life viewport and its starting pattern.
type Config struct {
	Width  int
	Height int

	// Pattern is a catalog name or Soup.
	Pattern string
	// Density is the live fraction of a soup.
	Density float64
	// StepLog2 makes every Step advance 2^StepLog2 generations. Only the
	// hashlife engine honours it.
	StepLog2 int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Pattern: Soup, Density: 0.35}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok && v != "" {
		c.Pattern = v
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["step"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed < 63 {
			c.StepLog2 = parsed
		}
	}
	return c
}
