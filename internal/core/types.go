package core

import "sort"

// Size describes the dimensions of a simulation viewport.
type Size struct {
	W int
	H int
}

// Sim is the contract the viewer drives. Cells returns one byte per cell of
// the viewport in row-major order, 1 for alive and 0 for dead.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim from flag-style key/value settings. A nil map
// selects the defaults.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name. Empty names and
// nil factories are ignored.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}

// Names lists the registered simulations in lexical order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
