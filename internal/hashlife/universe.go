package hashlife

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"hashlife/internal/core"
)

// Universe is an unbounded Life plane backed by a single quadtree root.
// World coordinates are the indices of the grid it was loaded from: Get(i, j)
// reads cells[i][j] right after Load, with i growing east and j growing south.
type Universe struct {
	store  *Store
	logger *slog.Logger

	root *Node
	// originX and originY are the world coordinates of the root's centre.
	originX, originY int64

	generation *big.Int

	// beforeForward, when set, sees the padded root ahead of each doubling
	// step.
	beforeForward func(root *Node, exponent int)
}

// Option configures a Universe at load time.
type Option func(*Universe)

// WithStore builds the universe in s instead of the default store.
func WithStore(s *Store) Option {
	return func(u *Universe) { u.store = s }
}

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(u *Universe) { u.logger = l }
}

// Load builds a universe from cells[i][j] with i in [0, width) and j in
// [0, height). Entries missing from cells, and everything outside the box,
// are dead.
func Load(width, height int, cells [][]bool, opts ...Option) (*Universe, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("load %dx%d: %w", width, height, ErrInvalidSize)
	}
	u := &Universe{generation: new(big.Int)}
	for _, opt := range opts {
		opt(u)
	}
	if u.store == nil {
		u.store = DefaultStore()
	}
	if u.logger == nil {
		u.logger = slog.Default()
	}

	// Smallest level >= 1 whose half side covers both half extents.
	need := max((width+1)/2, (height+1)/2)
	level := 1
	for 1<<(level-1) < need {
		level++
	}
	half := 1 << (level - 1)

	l := loader{store: u.store, cells: cells, w: width, h: height}
	u.originX, u.originY = int64(width/2), int64(height/2)
	u.root = l.build(level, width/2-half, height/2-half)

	u.logger.Debug("hashlife: loaded universe",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("level", level),
		slog.String("population", u.root.Population().String()),
	)
	return u, nil
}

// LoadGrid is Load over a core.Grid.
func LoadGrid(g *core.Grid, opts ...Option) (*Universe, error) {
	return Load(g.W, g.H, g.Columns(), opts...)
}

type loader struct {
	store *Store
	cells [][]bool
	w, h  int
}

func (l *loader) at(i, j int) bool {
	return i >= 0 && i < len(l.cells) && j >= 0 && j < len(l.cells[i]) && j < l.h && l.cells[i][j]
}

// build returns the node of the given level whose north-west cell sits at
// world (x0, y0).
func (l *loader) build(level, x0, y0 int) *Node {
	size := 1 << level
	if x0 >= l.w || y0 >= l.h || x0+size <= 0 || y0+size <= 0 {
		return l.store.Zero(level)
	}
	if level == 0 {
		return l.store.Cell(l.at(x0, y0))
	}
	half := size / 2
	return l.store.Node(
		l.build(level-1, x0, y0),
		l.build(level-1, x0+half, y0),
		l.build(level-1, x0, y0+half),
		l.build(level-1, x0+half, y0+half),
	)
}

// Root returns the current root node.
func (u *Universe) Root() *Node { return u.root }

// Store returns the store the universe builds its nodes in.
func (u *Universe) Store() *Store { return u.store }

// Generation returns the number of generations applied since Load.
func (u *Universe) Generation() *big.Int { return new(big.Int).Set(u.generation) }

// Population returns the number of live cells.
func (u *Universe) Population() *big.Int { return u.root.Population() }

// BorderEmpty reports whether the twelve outer grandchildren of n are all
// dead, so that n's content lies inside its central half. Nodes below level
// 2 only qualify when empty.
func BorderEmpty(n *Node) bool {
	if n.level < 2 {
		return n.Empty()
	}
	nw, ne, sw, se := n.nw, n.ne, n.sw, n.se
	return nw.nw.Empty() && nw.ne.Empty() && nw.sw.Empty() &&
		ne.nw.Empty() && ne.ne.Empty() && ne.se.Empty() &&
		sw.nw.Empty() && sw.sw.Empty() && sw.se.Empty() &&
		se.ne.Empty() && se.sw.Empty() && se.se.Empty()
}

// Extend pads the root with dead cells until it is at least level
// max(target, 2) and its border ring is empty.
func (u *Universe) Extend(target int) {
	target = max(target, 2)
	for u.root.level < target || !BorderEmpty(u.root) {
		u.root = u.store.grow(u.root)
		u.logger.Debug("hashlife: grew root", slog.Int("level", u.root.level))
	}
}

// Round advances the universe by one generation.
func (u *Universe) Round() {
	u.advance(big.NewInt(1))
}

// Rounds advances the universe by n generations.
func (u *Universe) Rounds(n int64) error {
	if n < 0 {
		return fmt.Errorf("rounds %d: %w", n, ErrNegativeRounds)
	}
	u.advance(big.NewInt(n))
	return nil
}

// RoundsBig advances the universe by n generations, for counts beyond int64.
func (u *Universe) RoundsBig(n *big.Int) error {
	if n == nil || n.Sign() < 0 {
		return fmt.Errorf("rounds %v: %w", n, ErrNegativeRounds)
	}
	u.advance(n)
	return nil
}

// advance applies 2^i generations for every set bit i of n, lowest first.
// Before each step the root is padded so that the pattern sits inside the
// central quarter: whatever it reaches within 2^i generations then stays
// inside the central half that Forward returns.
func (u *Universe) advance(n *big.Int) {
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 0 {
			continue
		}
		u.Extend(i + 2)
		u.root = u.store.grow(u.root)
		if !BorderEmpty(u.root) {
			panic("hashlife: advancing a root with live border cells")
		}
		if u.beforeForward != nil {
			u.beforeForward(u.root, i)
		}
		u.root = u.store.forward(u.root, i)
		doublingSteps.WithLabelValues(strconv.Itoa(i)).Inc()
		u.logger.Debug("hashlife: doubling step",
			slog.Int("exponent", i),
			slog.Int("level", u.root.level),
		)
	}
	u.generation.Add(u.generation, n)
}

// Get reports whether the cell at world (i, j) is alive. Cells outside the
// represented region are dead.
func (u *Universe) Get(i, j int) bool {
	x, okX := offset(i, u.originX)
	y, okY := offset(j, u.originY)
	if !okX || !okY {
		// Get only descends the centred 2^64 square, which int64 offsets cover.
		return false
	}

	level := u.root.level
	nw, ne, sw, se := u.root.nw, u.root.ne, u.root.sw, u.root.se
	// Past level 64 every int64 coordinate lies in the centred sub-square.
	for level > 64 {
		nw, ne, sw, se = nw.se, ne.sw, sw.ne, se.nw
		level--
	}
	if level < 64 {
		half := int64(1) << (level - 1)
		if x < -half || x >= half || y < -half || y >= half {
			return false
		}
	}

	// Offsets from the north-west corner of the square, modulo 2^64.
	off := uint64(1) << (level - 1)
	ux, uy := uint64(x)+off, uint64(y)+off

	bit := uint(level - 1)
	q := pick(nw, ne, sw, se, ux>>bit&1 == 1, uy>>bit&1 == 1)
	for q.level > 0 {
		bit--
		q = pick(q.nw, q.ne, q.sw, q.se, ux>>bit&1 == 1, uy>>bit&1 == 1)
	}
	return q.alive
}

// offset returns i - origin, and false when that overflows int64.
func offset(i int, origin int64) (int64, bool) {
	v := int64(i)
	d := v - origin
	if (origin > 0 && d > v) || (origin < 0 && d < v) {
		return 0, false
	}
	return d, true
}

func pick(nw, ne, sw, se *Node, east, south bool) *Node {
	switch {
	case south && east:
		return se
	case south:
		return sw
	case east:
		return ne
	default:
		return nw
	}
}

// Window samples the w×h rectangle whose north-west cell is world (x, y).
func (u *Universe) Window(x, y, w, h int) *core.Grid {
	g := core.NewGrid(w, h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if u.Get(x+dx, y+dy) {
				g.Set(dx, dy, true)
			}
		}
	}
	return g
}
