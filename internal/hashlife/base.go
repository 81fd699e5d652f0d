package hashlife

import "math/bits"

// A 4×4 block is packed into a uint16 with cell (x, y) at bit y*4+x, x
// growing east and y growing south. The centre cells sit at bits 5, 6, 9
// and 10; each mask selects the eight neighbours of one of them.
const (
	maskNW uint16 = 0x0757
	maskNE uint16 = 0x0EAE
	maskSW uint16 = 0x7570
	maskSE uint16 = 0xEAE0
)

var centreMasks = [4]struct {
	bit  uint
	mask uint16
}{
	{5, maskNW},
	{6, maskNE},
	{9, maskSW},
	{10, maskSE},
}

// Step4x4 returns the next state of the four centre cells of block: bit 0
// is the north-west centre cell, then north-east, south-west and
// south-east.
func Step4x4(block uint16) uint8 {
	var out uint8
	for i, c := range centreMasks {
		out |= rule(block, c.bit, c.mask) << i
	}
	return out
}

// rule applies B3/S23 to the cell at bit given its neighbour mask.
func rule(block uint16, bit uint, mask uint16) uint8 {
	n := bits.OnesCount16(block & mask)
	self := int(block>>bit) & 1
	// n == 3 births or survives; n == 2 keeps the current state.
	if n == 3 || n == 2 && self == 1 {
		return 1
	}
	return 0
}

// blockBits packs a level 2 node into the layout Step4x4 expects.
func blockBits(n *Node) uint16 {
	return quadBits(n.nw) | quadBits(n.ne)<<2 | quadBits(n.sw)<<8 | quadBits(n.se)<<10
}

// quadBits packs a level 1 node at bits 0, 1, 4 and 5.
func quadBits(q *Node) uint16 {
	return uint16(q.nw.pop) | uint16(q.ne.pop)<<1 | uint16(q.sw.pop)<<4 | uint16(q.se.pop)<<5
}

// evolve resolves a level 2 node to its level 1 centre one generation on.
func (s *Store) evolve(n *Node) *Node {
	s.baseCases++
	baseCases.Inc()
	next := Step4x4(blockBits(n))
	return s.Node(
		s.Cell(next&1 != 0),
		s.Cell(next&2 != 0),
		s.Cell(next&4 != 0),
		s.Cell(next&8 != 0),
	)
}
