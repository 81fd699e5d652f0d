package hashlife

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hashlife/internal/core"
)

func TestLoadGetContract(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 5}, {7, 2}, {1, 9}, {16, 16}, {13, 11}, {33, 4}}
	for i, sz := range sizes {
		w, h := sz[0], sz[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			cells := randomGrid(int64(i+1), w, h, 0.5).Columns()
			u, err := Load(w, h, cells)
			require.NoError(t, err)
			for x := 0; x < w; x++ {
				for y := 0; y < h; y++ {
					require.Equal(t, cells[x][y], u.Get(x, y), "cell (%d,%d)", x, y)
				}
			}
			for _, p := range [][2]int{{-1, 0}, {0, -1}, {w, 0}, {0, h}, {-100, -100}, {math.MaxInt32, 7}} {
				assert.False(t, u.Get(p[0], p[1]), "outside (%d,%d)", p[0], p[1])
			}
			assert.Equal(t, 0, u.Generation().Sign())
		})
	}
}

func TestLoadEdgeCases(t *testing.T) {
	t.Run("negative size", func(t *testing.T) {
		_, err := Load(-1, 3, nil)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("empty grid", func(t *testing.T) {
		u, err := Load(0, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, u.Population().Sign())
		assert.False(t, u.Get(0, 0))
		require.NoError(t, u.Rounds(10))
		assert.Equal(t, 0, u.Population().Sign())
	})

	t.Run("ragged cells read dead", func(t *testing.T) {
		cells := [][]bool{{true}, {}, {false, false, true, true}}
		u, err := Load(3, 3, cells)
		require.NoError(t, err)
		assert.True(t, u.Get(0, 0))
		assert.False(t, u.Get(1, 0))
		assert.True(t, u.Get(2, 2))
		// Beyond the declared height even though the slice is longer.
		assert.False(t, u.Get(2, 3))
		assert.Equal(t, int64(2), u.Population().Int64())
	})
}

func TestCrossCheckReference(t *testing.T) {
	rounds := []int{0, 1, 2, 3, 5, 8, 13}
	type board struct {
		w, h int
		seed int64
	}
	var boards []board
	for i := 0; i < 12; i++ {
		boards = append(boards, board{w: 1 + (i*5)%16, h: 1 + (i*11)%16, seed: int64(100 + i)})
	}
	boards = append(boards, board{16, 16, 7}, board{16, 16, 8}, board{16, 3, 9})

	for _, b := range boards {
		g := randomGrid(b.seed, b.w, b.h, 0.45)
		for _, n := range rounds {
			t.Run(fmt.Sprintf("%dx%d/seed%d/n%d", b.w, b.h, b.seed, n), func(t *testing.T) {
				u := mustLoad(t, g)
				require.NoError(t, u.Rounds(int64(n)))

				margin := n + 2
				ref := padded(g, margin)
				require.NoError(t, ref.Rounds(n))

				for y := -margin; y < b.h+margin; y++ {
					for x := -margin; x < b.w+margin; x++ {
						require.Equal(t, ref.Get(x+margin, y+margin), u.Get(x, y), "cell (%d,%d)", x, y)
					}
				}
				assert.Equal(t, int64(ref.Grid().Population()), u.Population().Int64())
				assert.Equal(t, int64(n), u.Generation().Int64())
			})
		}
	}
}

func TestStillLife(t *testing.T) {
	block := mustPattern(t, "block")
	for _, n := range []int64{1, 2, 7, 64, 1000, 1 << 20} {
		u := mustLoad(t, block)
		require.NoError(t, u.Rounds(n))
		assert.True(t, block.Equal(u.Window(0, 0, 2, 2)), "n=%d", n)
		assert.Equal(t, int64(4), u.Population().Int64(), "n=%d", n)
	}
}

func TestBlinkerPeriod(t *testing.T) {
	blinker := mustPattern(t, "blinker")
	u := mustLoad(t, blinker)
	initial := u.Window(-3, -3, 9, 7)

	u.Round()
	assert.False(t, initial.Equal(u.Window(-3, -3, 9, 7)), "blinker unchanged after one round")
	assert.True(t, u.Get(1, -1))
	assert.True(t, u.Get(1, 0))
	assert.True(t, u.Get(1, 1))
	assert.False(t, u.Get(0, 0))

	u.Round()
	assert.True(t, initial.Equal(u.Window(-3, -3, 9, 7)), "blinker did not return after two rounds")
	assert.Equal(t, int64(2), u.Generation().Int64())
}

func TestGliderTranslation(t *testing.T) {
	u := mustLoad(t, mustPattern(t, "glider"))
	initial := u.Window(-4, -4, 12, 12)

	require.NoError(t, u.Rounds(4))
	assert.True(t, initial.Equal(u.Window(-3, -3, 12, 12)),
		"want\n%s\ngot\n%s", initial, u.Window(-3, -3, 12, 12))

	require.NoError(t, u.Rounds(4*25))
	assert.True(t, initial.Equal(u.Window(-4+26, -4+26, 12, 12)))
	assert.Equal(t, int64(5), u.Population().Int64())
}

func TestGliderFarFuture(t *testing.T) {
	u := mustLoad(t, mustPattern(t, "glider"))
	initial := u.Window(-1, -1, 5, 5)

	// 2^60 generations carry the glider 2^58 cells south-east.
	gens := new(big.Int).Lsh(big.NewInt(1), 60)
	require.NoError(t, u.RoundsBig(gens))
	shift := 1 << 58
	assert.True(t, initial.Equal(u.Window(-1+shift, -1+shift, 5, 5)))
	assert.Equal(t, int64(5), u.Population().Int64())
	assert.False(t, u.Get(1, 2))
}

func TestHugeGenerationCounts(t *testing.T) {
	gens := new(big.Int).Lsh(big.NewInt(1), 100)

	t.Run("block", func(t *testing.T) {
		block := mustPattern(t, "block")
		u := mustLoad(t, block)
		require.NoError(t, u.RoundsBig(gens))
		assert.Greater(t, u.Root().Level(), 64)
		assert.True(t, block.Equal(u.Window(0, 0, 2, 2)))
		assert.False(t, u.Get(-1, 0))
		assert.False(t, u.Get(math.MaxInt64, 0))
		assert.Equal(t, int64(4), u.Population().Int64())
		assert.Equal(t, 0, u.Generation().Cmp(gens))
	})

	t.Run("blinker", func(t *testing.T) {
		blinker := mustPattern(t, "blinker")
		u := mustLoad(t, blinker)
		initial := u.Window(-2, -2, 7, 5)
		require.NoError(t, u.RoundsBig(gens))
		assert.True(t, initial.Equal(u.Window(-2, -2, 7, 5)))

		require.NoError(t, u.RoundsBig(big.NewInt(1)))
		assert.False(t, initial.Equal(u.Window(-2, -2, 7, 5)))
	})
}

func TestGetExtremeCoordinates(t *testing.T) {
	s := NewStore()
	// A level 64 root with one live cell in its north-east corner, which is
	// 2^63-1 east and 2^63 north of the centre.
	corner := s.Cell(true)
	for l := 1; l <= 64; l++ {
		z := s.Zero(l - 1)
		corner = s.Node(z, corner, z, z)
	}
	u := &Universe{store: s, logger: slog.Default(), root: corner, generation: new(big.Int)}
	assert.True(t, u.Get(math.MaxInt, math.MinInt))
	assert.False(t, u.Get(math.MaxInt-1, math.MinInt))

	// With the centre two cells east, the same corner is out of int range;
	// queries near math.MinInt must not wrap around onto it.
	u.originX = 2
	assert.False(t, u.Get(math.MinInt+1, math.MinInt))
	assert.False(t, u.Get(math.MinInt, math.MinInt))
	assert.False(t, u.Get(math.MaxInt, math.MinInt))
}

func TestAdvancePadsBeforeForward(t *testing.T) {
	for _, name := range []string{"glider", "r-pentomino", "pulsar", "gosper-glider-gun"} {
		t.Run(name, func(t *testing.T) {
			u := mustLoad(t, mustPattern(t, name))
			var exponents []int
			u.beforeForward = func(root *Node, exponent int) {
				exponents = append(exponents, exponent)
				assert.True(t, BorderEmpty(root), "exponent %d", exponent)
				assert.GreaterOrEqual(t, root.Level(), exponent+3)
				// One extra level keeps every live cell inside the central
				// quarter-side square.
				centre := u.store.Node(root.nw.se.se, root.ne.sw.sw, root.sw.ne.ne, root.se.nw.nw)
				assert.Equal(t, 0, centre.Population().Cmp(root.Population()), "exponent %d", exponent)
			}
			require.NoError(t, u.Rounds(0b1011_0101))
			assert.Equal(t, []int{0, 2, 4, 5, 7}, exponents)
		})
	}
}

func TestExtendPadding(t *testing.T) {
	// A 4×4 block fills its level 2 root out to the border.
	full := core.NewGrid(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			full.Set(x, y, true)
		}
	}
	u := mustLoad(t, full)
	require.Equal(t, 2, u.Root().Level())
	require.False(t, BorderEmpty(u.Root()))
	before := u.Window(-2, -2, 8, 8)

	for _, target := range []int{0, 1, 2, 3, 5, 9} {
		u.Extend(target)
		assert.GreaterOrEqual(t, u.Root().Level(), max(target, 2))
		assert.True(t, BorderEmpty(u.Root()), "target %d", target)
		assert.True(t, before.Equal(u.Window(-2, -2, 8, 8)))
	}
	assert.Equal(t, int64(16), u.Population().Int64())
}

func TestBorderEmpty(t *testing.T) {
	s := NewStore()
	assert.True(t, BorderEmpty(s.Zero(1)))
	assert.False(t, BorderEmpty(s.Node(s.Cell(true), s.Cell(false), s.Cell(false), s.Cell(false))))

	z, z2 := s.Zero(1), s.Zero(2)
	live := s.Node(s.Cell(true), s.Cell(false), s.Cell(false), s.Cell(false))

	// Live cells in any of the four inner grandchildren keep the border empty.
	inner := []*Node{
		s.Node(s.Node(z, z, z, live), z2, z2, z2),
		s.Node(z2, s.Node(z, z, live, z), z2, z2),
		s.Node(z2, z2, s.Node(z, live, z, z), z2),
		s.Node(z2, z2, z2, s.Node(live, z, z, z)),
	}
	for i, n := range inner {
		assert.True(t, BorderEmpty(n), "inner %d", i)
	}

	// A live cell in any of the twelve outer grandchildren does not.
	place := func(pos int) *Node {
		q := [4]*Node{z, z, z, z}
		q[pos] = live
		return s.Node(q[0], q[1], q[2], q[3])
	}
	outer := map[string]*Node{
		"nw.nw": s.Node(place(0), z2, z2, z2),
		"nw.ne": s.Node(place(1), z2, z2, z2),
		"nw.sw": s.Node(place(2), z2, z2, z2),
		"ne.nw": s.Node(z2, place(0), z2, z2),
		"ne.ne": s.Node(z2, place(1), z2, z2),
		"ne.se": s.Node(z2, place(3), z2, z2),
		"sw.nw": s.Node(z2, z2, place(0), z2),
		"sw.sw": s.Node(z2, z2, place(2), z2),
		"sw.se": s.Node(z2, z2, place(3), z2),
		"se.ne": s.Node(z2, z2, z2, place(1)),
		"se.sw": s.Node(z2, z2, z2, place(2)),
		"se.se": s.Node(z2, z2, z2, place(3)),
	}
	for name, n := range outer {
		assert.Equal(t, 3, n.Level())
		assert.False(t, BorderEmpty(n), name)
	}
}

func TestRoundsMatchesRepeatedRound(t *testing.T) {
	seed := mustPattern(t, "r-pentomino")
	stepped := mustLoad(t, seed)
	for n := 0; n <= 64; n++ {
		if n > 0 {
			stepped.Round()
		}
		jumped := mustLoad(t, seed)
		require.NoError(t, jumped.Rounds(int64(n)))

		require.Equal(t, 0, stepped.Generation().Cmp(jumped.Generation()))
		require.Equal(t, 0, stepped.Population().Cmp(jumped.Population()), "n=%d", n)
		require.True(t, stepped.Window(-48, -48, 96, 96).Equal(jumped.Window(-48, -48, 96, 96)), "n=%d", n)
	}
}

func TestEmptyUniverse(t *testing.T) {
	u := mustLoad(t, core.NewGrid(8, 8))
	total := int64(0)
	for _, n := range []int64{1, 5, 1000, 1 << 40} {
		require.NoError(t, u.Rounds(n))
		total += n
		assert.Equal(t, 0, u.Population().Sign())
		assert.Equal(t, total, u.Generation().Int64())
	}
}

func TestRoundsRejectsInvalidCounts(t *testing.T) {
	u := mustLoad(t, mustPattern(t, "glider"))
	root := u.Root()

	assert.ErrorIs(t, u.Rounds(-1), ErrNegativeRounds)
	assert.ErrorIs(t, u.RoundsBig(big.NewInt(-5)), ErrNegativeRounds)
	assert.ErrorIs(t, u.RoundsBig(nil), ErrNegativeRounds)

	assert.Same(t, root, u.Root())
	assert.Equal(t, 0, u.Generation().Sign())
}

func TestGenerationCounter(t *testing.T) {
	u := mustLoad(t, mustPattern(t, "block"))
	require.NoError(t, u.Rounds(3))
	u.Round()
	big70 := new(big.Int).Lsh(big.NewInt(1), 70)
	require.NoError(t, u.RoundsBig(big70))

	want := new(big.Int).Add(big70, big.NewInt(4))
	assert.Equal(t, 0, u.Generation().Cmp(want))

	// Callers get a copy.
	u.Generation().SetInt64(0)
	assert.Equal(t, 0, u.Generation().Cmp(want))
}

func TestPopulationAtHighLevels(t *testing.T) {
	u := mustLoad(t, mustPattern(t, "pulsar"))
	require.NoError(t, u.Rounds(1<<40))
	require.Greater(t, u.Root().Level(), maxNarrowLevel)
	// Pulsar has period 3 and 2^40 ≡ 1 (mod 3): its phase-1 population is 56.
	assert.Equal(t, int64(56), u.Population().Int64())
}

func TestSharedStore(t *testing.T) {
	s := NewStore()
	a := mustLoad(t, mustPattern(t, "acorn"), WithStore(s))
	b := mustLoad(t, mustPattern(t, "acorn"), WithStore(s))
	assert.Same(t, a.Root(), b.Root())
	assert.Same(t, s, a.Store())

	require.NoError(t, a.Rounds(200))
	require.NoError(t, b.Rounds(200))
	assert.Same(t, a.Root(), b.Root())
	assert.Greater(t, s.Stats().Computations, uint64(0))
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	u := mustLoad(t, mustPattern(t, "blinker"), WithLogger(logger))
	require.NoError(t, u.Rounds(5))

	out := buf.String()
	assert.Contains(t, out, "hashlife: loaded universe")
	assert.Equal(t, 2, strings.Count(out, "hashlife: doubling step"))
	assert.Contains(t, out, "exponent=2")
}
