package langevin

import "splitstep/internal/core"

// homogeneous sets every site to level.
func homogeneous(l *core.Lattice, level float64) {
	l.Fill(level)
}

// singleSeed activates only the middle site, for spreading experiments.
func singleSeed(l *core.Lattice, level float64) {
	n := l.Len()
	for i := 0; i < n; i++ {
		l.Set(0, i)
	}
	l.Set(level, n/2)
	l.Update()
}

func init() {
	core.Register("homogeneous", homogeneous)
	core.Register("seed", singleSeed)
}
