// Package naive is a fixed-grid, per-cell Life simulator. It recomputes
// every cell every generation and treats everything off the board as dead,
// which makes it a slow but obviously correct reference for small boards.
package naive

import (
	"errors"
	"fmt"

	"hashlife/internal/core"
)

// ErrNegativeRounds indicates a negative generation count.
var ErrNegativeRounds = errors.New("generation count must be non-negative")

// Universe is a w×h Life board with dead surroundings.
type Universe struct {
	w, h int
	cur  []uint8
	nxt  []uint8
	gen  int
}

// New returns a board holding cells[i][j], i in [0, width) growing east and
// j in [0, height) growing south. Missing entries are dead.
func New(width, height int, cells [][]bool) *Universe {
	width, height = max(width, 0), max(height, 0)
	u := &Universe{w: width, h: height, cur: make([]uint8, width*height), nxt: make([]uint8, width*height)}
	for i := 0; i < width && i < len(cells); i++ {
		for j := 0; j < height && j < len(cells[i]); j++ {
			if cells[i][j] {
				u.cur[j*width+i] = 1
			}
		}
	}
	return u
}

// FromGrid copies g into a new board of the same size.
func FromGrid(g *core.Grid) *Universe {
	return New(g.W, g.H, g.Columns())
}

// Name returns the simulation identifier.
func (u *Universe) Name() string { return "naive" }

// Size returns the board dimensions.
func (u *Universe) Size() core.Size { return core.Size{W: u.w, H: u.h} }

// Cells exposes the current board in row-major order.
func (u *Universe) Cells() []uint8 { return u.cur }

// Generation returns the number of generations applied.
func (u *Universe) Generation() int { return u.gen }

// Reset fills the board with a random soup and rewinds the generation
// counter.
func (u *Universe) Reset(seed int64) {
	g := core.NewGrid(u.w, u.h)
	core.NewRNG(seed).Soup(g, u.w, u.h, 0.5)
	copy(u.cur, g.Cells())
	u.gen = 0
}

// Get reports the state at (i, j); off-board cells are dead.
func (u *Universe) Get(i, j int) bool {
	if i < 0 || j < 0 || i >= u.w || j >= u.h {
		return false
	}
	return u.cur[j*u.w+i] == 1
}

// Step advances the board by one generation.
func (u *Universe) Step() { u.Round() }

// Round advances the board by one generation.
func (u *Universe) Round() {
	w, h := u.w, u.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					neighbors += int(u.cur[ny*w+nx])
				}
			}
			idx := y*w + x
			alive := u.cur[idx] == 1
			u.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				u.nxt[idx] = 1
			}
		}
	}
	u.cur, u.nxt = u.nxt, u.cur
	u.gen++
}

// Rounds advances the board by n generations, one at a time.
func (u *Universe) Rounds(n int) error {
	if n < 0 {
		return fmt.Errorf("rounds %d: %w", n, ErrNegativeRounds)
	}
	for i := 0; i < n; i++ {
		u.Round()
	}
	return nil
}

// Grid copies the current board.
func (u *Universe) Grid() *core.Grid {
	g := core.NewGrid(u.w, u.h)
	copy(g.Cells(), u.cur)
	return g
}
