package core

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// Soup fills the centred w*h rectangle of g with live cells at the given
// density and clears everything else.
func (r *RNG) Soup(g *Grid, w, h int, density float64) {
	g.Clear()
	if w > g.W {
		w = g.W
	}
	if h > g.H {
		h = g.H
	}
	x0 := (g.W - w) / 2
	y0 := (g.H - h) / 2
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			g.Set(x, y, r.Chance(density))
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
