package hashlife

import "fmt"

// Forward returns the central half of n, one level down, advanced by 2^d
// generations. n must be at least level 2 and d must lie in [0, level-2].
func (s *Store) Forward(n *Node, d int) (*Node, error) {
	if n.level < 2 {
		return nil, fmt.Errorf("forward level %d: %w", n.level, ErrLevelTooSmall)
	}
	if d < 0 || d > n.level-2 {
		return nil, fmt.Errorf("forward level %d by 2^%d: %w", n.level, d, ErrExponentRange)
	}
	return s.forward(n, d), nil
}

func (s *Store) forward(n *Node, d int) *Node {
	if n.Empty() {
		return s.Zero(n.level - 1)
	}
	if n.next != nil {
		if r := n.next[d]; r != nil {
			s.hits++
			forwardCacheHits.Inc()
			return r
		}
	}

	var r *Node
	if n.level == 2 {
		r = s.evolve(n)
	} else {
		r = s.combine(n, d)
	}

	if n.next == nil {
		n.next = make([]*Node, n.level-1)
	}
	n.next[d] = r
	s.computed++
	forwardComputations.Inc()
	return r
}

// combine splits n (level L ≥ 3) into a 3×3 tiling of overlapping level L-1
// windows, advances each, and assembles the level L-1 result.
func (s *Store) combine(n *Node, d int) *Node {
	nw, ne, sw, se := n.nw, n.ne, n.sw, n.se

	// Windows in row-major order: row 0 is the north edge.
	w00 := nw
	w01 := s.Node(nw.ne, ne.nw, nw.se, ne.sw)
	w02 := ne
	w10 := s.Node(nw.sw, nw.se, sw.nw, sw.ne)
	w11 := s.Node(nw.se, ne.sw, sw.ne, se.nw)
	w12 := s.Node(ne.sw, ne.se, se.nw, se.ne)
	w20 := sw
	w21 := s.Node(sw.ne, se.nw, sw.se, se.sw)
	w22 := se

	if d == n.level-2 {
		// Two half steps of 2^(L-3) each.
		h := d - 1
		r00, r01, r02 := s.forward(w00, h), s.forward(w01, h), s.forward(w02, h)
		r10, r11, r12 := s.forward(w10, h), s.forward(w11, h), s.forward(w12, h)
		r20, r21, r22 := s.forward(w20, h), s.forward(w21, h), s.forward(w22, h)
		return s.Node(
			s.forward(s.Node(r00, r01, r10, r11), h),
			s.forward(s.Node(r01, r02, r11, r12), h),
			s.forward(s.Node(r10, r11, r20, r21), h),
			s.forward(s.Node(r11, r12, r21, r22), h),
		)
	}

	// The nine results tile the centre of n; each output quadrant takes the
	// inner corners of one 2×2 group without advancing further.
	r00, r01, r02 := s.forward(w00, d), s.forward(w01, d), s.forward(w02, d)
	r10, r11, r12 := s.forward(w10, d), s.forward(w11, d), s.forward(w12, d)
	r20, r21, r22 := s.forward(w20, d), s.forward(w21, d), s.forward(w22, d)
	return s.Node(
		s.Node(r00.se, r01.sw, r10.ne, r11.nw),
		s.Node(r01.se, r02.sw, r11.ne, r12.nw),
		s.Node(r10.se, r11.sw, r20.ne, r21.nw),
		s.Node(r11.se, r12.sw, r21.ne, r22.nw),
	)
}
