package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters of the viewer.
type Config struct {
	Sim     string
	Pattern string
	Width   int
	Height  int
	Step    int
	Scale   int
	TPS     int
	Seed    int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "hashlife", Pattern: "soup", Width: 256, Height: 256, Scale: 3, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (hashlife or naive)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "catalog pattern or soup")
	fs.IntVar(&c.Width, "w", c.Width, "viewport width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "viewport height in cells")
	fs.IntVar(&c.Step, "step", c.Step, "advance 2^step generations per tick (hashlife only)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
}

// SimConfig renders the simulation settings as the key/value map factories
// accept.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(c.Width),
		"h":       strconv.Itoa(c.Height),
		"pattern": c.Pattern,
		"step":    strconv.Itoa(c.Step),
	}
}
