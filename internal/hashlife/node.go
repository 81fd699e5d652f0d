package hashlife

import "math/big"

// maxNarrowLevel is the highest level whose population fits a uint64
// (4^31 = 2^62).
const maxNarrowLevel = 31

// Node is an immutable square of 2^level cells per side. Level 0 nodes are
// single cells; every other node has four children one level down. Nodes
// are only created through a Store, which guarantees that equal content is
// the same pointer.
type Node struct {
	level int
	alive bool

	nw, ne, sw, se *Node

	pop  uint64
	wide *big.Int

	// next[d] caches the centre advanced by 2^d generations.
	next []*Node
}

func newCell(alive bool) *Node {
	n := &Node{alive: alive}
	if alive {
		n.pop = 1
	}
	return n
}

func newInterior(nw, ne, sw, se *Node) *Node {
	n := &Node{level: nw.level + 1, nw: nw, ne: ne, sw: sw, se: se}
	if n.level <= maxNarrowLevel {
		n.pop = nw.pop + ne.pop + sw.pop + se.pop
		return n
	}
	sum := new(big.Int)
	for _, c := range [4]*Node{nw, ne, sw, se} {
		if c.wide != nil {
			sum.Add(sum, c.wide)
		} else {
			sum.Add(sum, new(big.Int).SetUint64(c.pop))
		}
	}
	n.wide = sum
	return n
}

// Level returns the node's level; the node covers 2^level × 2^level cells.
func (n *Node) Level() int { return n.level }

// Alive reports the state of a level 0 node. It is false for interior
// nodes.
func (n *Node) Alive() bool { return n.alive }

// NW returns the north-west child, nil for cells.
func (n *Node) NW() *Node { return n.nw }

// NE returns the north-east child, nil for cells.
func (n *Node) NE() *Node { return n.ne }

// SW returns the south-west child, nil for cells.
func (n *Node) SW() *Node { return n.sw }

// SE returns the south-east child, nil for cells.
func (n *Node) SE() *Node { return n.se }

// Population returns the exact number of live cells in the node.
func (n *Node) Population() *big.Int {
	if n.wide != nil {
		return new(big.Int).Set(n.wide)
	}
	return new(big.Int).SetUint64(n.pop)
}

// Empty reports whether the node has no live cells.
func (n *Node) Empty() bool {
	if n.wide != nil {
		return n.wide.Sign() == 0
	}
	return n.pop == 0
}
