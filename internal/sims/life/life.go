// Package life registers Game of Life simulations for the viewer: the
// hashlife engine behind a fixed viewport, and the per-cell reference engine.
package life

import (
	"fmt"
	"log/slog"

	"hashlife/internal/core"
	"hashlife/internal/hashlife"
	"hashlife/internal/naive"
	"hashlife/internal/pattern"
)

// initial builds the viewport-sized starting board for cfg. Unknown pattern
// names fall back to a soup.
func initial(cfg Config, seed int64) *core.Grid {
	g := core.NewGrid(cfg.Width, cfg.Height)
	if cfg.Pattern != Soup {
		p, err := pattern.Lookup(cfg.Pattern)
		if err == nil {
			x0, y0 := (g.W-p.W)/2, (g.H-p.H)/2
			for y := 0; y < p.H; y++ {
				for x := 0; x < p.W; x++ {
					g.Set(x0+x, y0+y, p.Alive(x, y))
				}
			}
			return g
		}
		slog.Warn("life: unknown pattern, using soup", slog.String("pattern", cfg.Pattern))
	}
	core.NewRNG(seed).Soup(g, g.W/4, g.H/4, cfg.Density)
	return g
}

// HashLife shows a fixed window of an unbounded hashlife universe. World
// coordinates coincide with viewport coordinates.
type HashLife struct {
	cfg     Config
	u       *hashlife.Universe
	display *core.Grid
}

// NewHashLife returns a hashlife simulation seeded from cfg.
func NewHashLife(cfg Config) *HashLife {
	h := &HashLife{cfg: cfg, display: core.NewGrid(cfg.Width, cfg.Height)}
	h.Reset(0)
	return h
}

// Name returns the simulation identifier.
func (h *HashLife) Name() string { return "hashlife" }

// Size returns the viewport dimensions.
func (h *HashLife) Size() core.Size { return core.Size{W: h.cfg.Width, H: h.cfg.Height} }

// Universe exposes the underlying universe.
func (h *HashLife) Universe() *hashlife.Universe { return h.u }

// Reset reloads the starting board.
func (h *HashLife) Reset(seed int64) {
	u, err := hashlife.LoadGrid(initial(h.cfg, seed))
	if err != nil {
		// Viewport sizes are validated by FromMap.
		panic(err)
	}
	h.u = u
	h.refresh()
}

// Step advances the universe by 2^StepLog2 generations.
func (h *HashLife) Step() {
	if err := h.u.Rounds(int64(1) << h.cfg.StepLog2); err != nil {
		panic(err)
	}
	h.refresh()
}

// Cells exposes the viewport.
func (h *HashLife) Cells() []uint8 { return h.display.Cells() }

// Status summarises generation, population and tree depth.
func (h *HashLife) Status() string {
	return fmt.Sprintf("gen %s  pop %s  level %d", h.u.Generation(), h.u.Population(), h.u.Root().Level())
}

func (h *HashLife) refresh() {
	w := h.u.Window(0, 0, h.cfg.Width, h.cfg.Height)
	copy(h.display.Cells(), w.Cells())
}

// Reference wraps the naive engine so Reset honours the configured pattern.
type Reference struct {
	*naive.Universe
	cfg Config
}

// NewReference returns a reference simulation seeded from cfg.
func NewReference(cfg Config) *Reference {
	r := &Reference{cfg: cfg}
	r.Reset(0)
	return r
}

// Reset reloads the starting board.
func (r *Reference) Reset(seed int64) {
	r.Universe = naive.FromGrid(initial(r.cfg, seed))
}

// Status summarises generation and population.
func (r *Reference) Status() string {
	return fmt.Sprintf("gen %d  pop %d", r.Generation(), r.Grid().Population())
}

func init() {
	core.Register("hashlife", func(cfg map[string]string) core.Sim {
		return NewHashLife(FromMap(cfg))
	})
	core.Register("naive", func(cfg map[string]string) core.Sim {
		return NewReference(FromMap(cfg))
	})
}
