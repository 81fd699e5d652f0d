package core

// Grid is a finite board of alive/dead cells stored in row-major order. Cells
// outside the board read as dead.
type Grid struct {
	W, H int
	data []uint8
}

// NewGrid allocates an all-dead grid. Non-positive dimensions produce an
// empty grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so renderers can read it directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies on the board.
func (g *Grid) In(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// Alive reports the state at (x, y).
func (g *Grid) Alive(x, y int) bool {
	if !g.In(x, y) {
		return false
	}
	return g.data[g.Index(x, y)] != 0
}

// Set writes the state at (x, y). Writes outside the board are dropped.
func (g *Grid) Set(x, y int, alive bool) {
	if !g.In(x, y) {
		return
	}
	var v uint8
	if alive {
		v = 1
	}
	g.data[g.Index(x, y)] = v
}

// Population counts the live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		if c != 0 {
			n++
		}
	}
	return n
}

// Columns returns the board as cells[x][y], the layout the engines load.
func (g *Grid) Columns() [][]bool {
	cols := make([][]bool, g.W)
	for x := range cols {
		col := make([]bool, g.H)
		for y := range col {
			col[y] = g.data[g.Index(x, y)] != 0
		}
		cols[x] = col
	}
	return cols
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.data {
		if (g.data[i] != 0) != (o.data[i] != 0) {
			return false
		}
	}
	return true
}

// String renders the grid with 'O' for alive and '.' for dead, one row per
// line.
func (g *Grid) String() string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.data[g.Index(x, y)] != 0 {
				buf = append(buf, 'O')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Clear fills the grid with dead cells.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
