package core

import (
	"math"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLatticeSetThenUpdate(t *testing.T) {
	for _, n := range []int{1, 2, 8, 1024} {
		l := NewLattice(n)
		for i := 0; i < n; i++ {
			l.Set(float64(i)+0.5, i)
		}
		for i := 0; i < n; i++ {
			if got := l.Get(i); got != 0 {
				t.Fatalf("n=%d: staged value visible before Update at site %d: %v", n, i, got)
			}
		}
		l.Update()
		for i := 0; i < n; i++ {
			if got, want := l.Get(i), float64(i)+0.5; got != want {
				t.Fatalf("n=%d: site %d = %v, want %v", n, i, got, want)
			}
		}
	}
}

func TestLatticePeriodicWrap(t *testing.T) {
	const n = 16
	l := NewLattice(n)
	for i := 0; i < n; i++ {
		l.Set(float64(i+1), i)
	}
	l.Update()

	if l.Left(0) != l.Get(n-1) {
		t.Fatalf("left(0)=%v, want get(N-1)=%v", l.Left(0), l.Get(n-1))
	}
	if l.Right(n-1) != l.Get(0) {
		t.Fatalf("right(N-1)=%v, want get(0)=%v", l.Right(n-1), l.Get(0))
	}
	for i := 1; i < n-1; i++ {
		if l.Left(i) != l.Get(i-1) || l.Right(i) != l.Get(i+1) {
			t.Fatalf("site %d: neighbours (%v,%v), want (%v,%v)", i, l.Left(i), l.Right(i), l.Get(i-1), l.Get(i+1))
		}
	}
}

func TestLatticeUpdateWithoutWritesKeepsPadding(t *testing.T) {
	const n = 8
	l := NewLattice(n)
	for i := 0; i < n; i++ {
		l.Set(float64(i*i), i)
	}
	l.Update()
	left, right := l.Left(0), l.Right(n-1)

	l.Update()
	l.Update()
	if l.Left(0) != left || l.Right(n-1) != right {
		t.Fatalf("padding changed: (%v,%v) -> (%v,%v)", left, right, l.Left(0), l.Right(n-1))
	}
}

func TestLatticeFillSumSnapshot(t *testing.T) {
	l := NewLattice(32)
	l.Fill(0.25)
	if got := l.Sum(); got != 8 {
		t.Fatalf("sum=%v, want 8", got)
	}
	snap := l.Snapshot(nil)
	if len(snap) != 32 || snap[31] != 0.25 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
	if l.Left(0) != 0.25 || l.Right(31) != 0.25 {
		t.Fatal("Fill must publish wrap padding")
	}
}

func TestNewLatticeClampsSize(t *testing.T) {
	if got := NewLattice(0).Len(); got != 1 {
		t.Fatalf("Len=%d, want 1", got)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: true, 2: true, 3: false, 1024: true, 1000: false, -4: false} {
		if got := IsPowerOfTwo(n); got != want {
			t.Fatalf("IsPowerOfTwo(%d)=%v, want %v", n, got, want)
		}
	}
}

// Every site takes the sum of its neighbours, so a field of ones doubles each
// generation. Any wrap or synchronisation fault breaks the uniformity.
func TestLatticeNeighbourSumAcrossWorkers(t *testing.T) {
	const (
		n           = 64
		workers     = 4
		generations = 10
	)
	l := NewLattice(n)
	l.Fill(1)
	b := NewBarrier(workers)

	var wg sync.WaitGroup
	size := n / workers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for g := 0; g < generations; g++ {
				for i := start; i < end; i++ {
					l.Set(l.Left(i)+l.Right(i), i)
				}
				elected, err := b.Wait()
				if err != nil {
					t.Error(err)
					return
				}
				if elected {
					l.Update()
				}
				if _, err := b.Wait(); err != nil {
					t.Error(err)
					return
				}
			}
		}(w*size, (w+1)*size)
	}
	wg.Wait()

	want := math.Pow(2, generations)
	for i := 0; i < n; i++ {
		if l.Get(i) != want {
			t.Fatalf("site %d = %v, want %v", i, l.Get(i), want)
		}
	}
}

func BenchmarkLatticeUpdate(b *testing.B) {
	l := NewLattice(1 << 17)
	for i := 0; i < b.N; i++ {
		l.Update()
	}
}
