package hashlife

import (
	"fmt"
	"runtime"
	"sync"
	"weak"
)

// key identifies interior node content. Level and population are functions
// of the children, so the four child pointers are the whole signature.
type key struct {
	nw, ne, sw, se *Node
}

// Stats counts store activity since creation.
type Stats struct {
	// NodesCreated counts interior nodes allocated by Node.
	NodesCreated uint64
	// NodesReclaimed counts registry entries dropped after collection.
	NodesReclaimed uint64
	// Live is the number of registry entries currently held.
	Live int
	// Computations counts forward results computed rather than served from
	// a node's cache.
	Computations uint64
	// CacheHits counts forward results served from a node's cache.
	CacheHits uint64
	// BaseCases counts 4×4 blocks resolved by the bit-mask rule.
	BaseCases uint64
}

// Store is the canonical registry and node factory. It holds only weak
// references to interior nodes: an entry disappears once nothing else
// references its node, and a later request builds a fresh one.
//
// A Store and the nodes it returns must be driven from one goroutine; the
// internal lock only covers clean-ups run by the garbage collector.
type Store struct {
	mu    sync.Mutex
	nodes map[key]weak.Pointer[Node]

	dead, alive *Node
	zeros       []*Node

	created, reclaimed uint64
	computed, hits     uint64
	baseCases          uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{
		nodes: make(map[key]weak.Pointer[Node]),
		dead:  newCell(false),
		alive: newCell(true),
	}
	s.zeros = []*Node{s.dead}
	return s
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// DefaultStore returns the process-wide store used when a Universe is loaded
// without WithStore.
func DefaultStore() *Store {
	defaultStoreOnce.Do(func() { defaultStore = NewStore() })
	return defaultStore
}

// Cell returns the canonical level 0 node for the given state.
func (s *Store) Cell(alive bool) *Node {
	if alive {
		return s.alive
	}
	return s.dead
}

// Node returns the canonical node with the given children. The children must
// be non-nil and share one level; anything else is a caller bug and panics
// with a *LevelMismatchError.
func (s *Store) Node(nw, ne, sw, se *Node) *Node {
	if nw == nil || ne == nil || sw == nil || se == nil ||
		ne.level != nw.level || sw.level != nw.level || se.level != nw.level {
		panic(&LevelMismatchError{NW: levelOf(nw), NE: levelOf(ne), SW: levelOf(sw), SE: levelOf(se)})
	}

	k := key{nw, ne, sw, se}
	s.mu.Lock()
	if wp, ok := s.nodes[k]; ok {
		if n := wp.Value(); n != nil {
			s.mu.Unlock()
			return n
		}
	}
	n := newInterior(nw, ne, sw, se)
	s.nodes[k] = weak.Make(n)
	s.created++
	s.mu.Unlock()

	runtime.AddCleanup(n, s.release, k)
	nodesCreated.Inc()
	return n
}

// release drops the registry entry for k unless it has been replaced by a
// live node since.
func (s *Store) release(k key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wp, ok := s.nodes[k]; ok && wp.Value() == nil {
		delete(s.nodes, k)
		s.reclaimed++
		nodesReclaimed.Inc()
	}
}

// Zero returns the canonical all-dead node of level k.
func (s *Store) Zero(k int) *Node {
	if k < 0 {
		panic(fmt.Sprintf("hashlife: negative zero level %d", k))
	}
	for len(s.zeros) <= k {
		z := s.zeros[len(s.zeros)-1]
		s.zeros = append(s.zeros, s.Node(z, z, z, z))
	}
	return s.zeros[k]
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		NodesCreated:   s.created,
		NodesReclaimed: s.reclaimed,
		Live:           len(s.nodes),
		Computations:   s.computed,
		CacheHits:      s.hits,
		BaseCases:      s.baseCases,
	}
}

// grow wraps n in a node one level larger with n's content at its centre.
// A single cell has no centre at level 1, so it lands on the cell just
// south-east of the centre of a level 2 node, where grow places the
// south-east child of larger nodes.
func (s *Store) grow(n *Node) *Node {
	if n.level == 0 {
		z, d := s.Zero(1), s.dead
		return s.Node(z, z, z, s.Node(n, d, d, d))
	}
	z := s.Zero(n.level - 1)
	return s.Node(
		s.Node(z, z, z, n.nw),
		s.Node(z, z, n.ne, z),
		s.Node(z, n.sw, z, z),
		s.Node(n.se, z, z, z),
	)
}

func levelOf(n *Node) int {
	if n == nil {
		return -1
	}
	return n.level
}
