package core

import "gonum.org/v1/gonum/floats"

// Lattice stores a one-dimensional periodic field of non-negative values in
// two padded buffers. Reads (Get, Left, Right) always see the current
// generation; Set stages values into the next generation, which becomes
// visible only after Update.
//
// Each buffer holds n+2 cells: raw[0] mirrors the last site and raw[n+1]
// mirrors the first one, so neighbour lookups never branch on the boundary.
type Lattice struct {
	n int

	raw  [2][]float64
	curr int

	// views into raw[curr]
	sites []float64
	right []float64
	// view into raw[1-curr]
	staged []float64
}

// NewLattice allocates a ring of n sites. All values start at zero.
func NewLattice(n int) *Lattice {
	if n <= 0 {
		n = 1
	}
	l := &Lattice{n: n}
	l.raw[0] = make([]float64, n+2)
	l.raw[1] = make([]float64, n+2)
	l.bind()
	return l
}

func (l *Lattice) bind() {
	cur := l.raw[l.curr]
	l.sites = cur[1 : l.n+1]
	l.right = cur[2 : l.n+2]
	l.staged = l.raw[1-l.curr][1 : l.n+1]
}

// Len reports the number of sites.
func (l *Lattice) Len() int { return l.n }

// Get returns the current value at site i.
func (l *Lattice) Get(i int) float64 { return l.sites[i] }

// Set stages v as the next-generation value of site i.
func (l *Lattice) Set(v float64, i int) { l.staged[i] = v }

// Left returns the current value of the periodic predecessor of site i.
func (l *Lattice) Left(i int) float64 { return l.raw[l.curr][i] }

// Right returns the current value of the periodic successor of site i.
func (l *Lattice) Right(i int) float64 { return l.right[i] }

// Update copies the wrap padding of the staged buffer and makes it the
// current generation. It must not run concurrently with any other method.
func (l *Lattice) Update() {
	next := l.raw[1-l.curr]
	next[0] = next[l.n]
	next[l.n+1] = next[1]
	l.curr = 1 - l.curr
	l.bind()
}

// Fill stages v at every site and publishes it.
func (l *Lattice) Fill(v float64) {
	for i := range l.staged {
		l.staged[i] = v
	}
	l.Update()
}

// Sum adds up the current generation.
func (l *Lattice) Sum() float64 { return floats.Sum(l.sites) }

// Snapshot copies the current generation into dst, growing it if needed.
func (l *Lattice) Snapshot(dst []float64) []float64 {
	if cap(dst) < l.n {
		dst = make([]float64, l.n)
	}
	dst = dst[:l.n]
	copy(dst, l.sites)
	return dst
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
