package hashlife

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hashlife/internal/core"
	"hashlife/internal/naive"
	"hashlife/internal/pattern"
)

// cellAt reads the cell at (x, y) measured from n's north-west corner.
func cellAt(n *Node, x, y int) bool {
	for n.level > 0 {
		half := 1 << (n.level - 1)
		east, south := x >= half, y >= half
		if east {
			x -= half
		}
		if south {
			y -= half
		}
		n = pick(n.nw, n.ne, n.sw, n.se, east, south)
	}
	return n.alive
}

func randomGrid(seed int64, w, h int, density float64) *core.Grid {
	g := core.NewGrid(w, h)
	core.NewRNG(seed).Soup(g, w, h, density)
	return g
}

func mustPattern(t *testing.T, name string) *core.Grid {
	t.Helper()
	g, err := pattern.Lookup(name)
	require.NoError(t, err)
	return g
}

func mustLoad(t *testing.T, g *core.Grid, opts ...Option) *Universe {
	t.Helper()
	u, err := LoadGrid(g, opts...)
	require.NoError(t, err)
	return u
}

// padded returns a reference board with margin dead cells around g, enough
// that nothing within margin-1 generations ever touches its edge.
func padded(g *core.Grid, margin int) *naive.Universe {
	board := core.NewGrid(g.W+2*margin, g.H+2*margin)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			board.Set(x+margin, y+margin, g.Alive(x, y))
		}
	}
	return naive.FromGrid(board)
}
