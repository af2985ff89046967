package core

import "sort"

// Initializer writes the generation-zero field into a lattice. level is the
// configured initial density.
type Initializer func(l *Lattice, level float64)

var initializers = map[string]Initializer{}

// Register adds an initial condition under the provided name.
func Register(name string, f Initializer) {
	if name == "" || f == nil {
		return
	}
	initializers[name] = f
}

// Initializers exposes the registry of available initial conditions.
func Initializers() map[string]Initializer {
	return initializers
}

// InitializerNames lists registered initial conditions in sorted order.
func InitializerNames() []string {
	names := make([]string, 0, len(initializers))
	for name := range initializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
