package render

import "testing"

func TestSpaceTimeScrolls(t *testing.T) {
	s := NewSpaceTime(2, 3, 1)
	s.Push([]float64{1, 1})
	if s.Rows() != 1 {
		t.Fatalf("Rows=%d", s.Rows())
	}

	px := s.Pixels()
	stride := 4 * 2
	if px[3] != 0 || px[stride+3] != 0 {
		t.Fatal("unfilled rows must be transparent")
	}
	if px[2*stride] != 255 {
		t.Fatalf("newest row must be at the bottom, got %v", px[2*stride:])
	}

	s.Push([]float64{0, 0})
	s.Push([]float64{0, 0})
	s.Push([]float64{0, 0})
	px = s.Pixels()
	for r := 0; r < 3; r++ {
		if px[r*stride] != 0 || px[r*stride+3] != 255 {
			t.Fatalf("row %d = %v, want opaque black", r, px[r*stride:(r+1)*stride])
		}
	}
}

func TestSpaceTimeDownsamplesWideRows(t *testing.T) {
	s := NewSpaceTime(2, 1, 1)
	s.Push([]float64{1, 1, 0, 0})
	px := s.Pixels()
	if px[0] != 255 || px[4] != 0 {
		t.Fatalf("pixels=%v", px)
	}
}

func TestSpaceTimeClear(t *testing.T) {
	s := NewSpaceTime(4, 4, 1)
	s.Push([]float64{1, 1, 1, 1})
	s.Clear()
	if s.Rows() != 0 {
		t.Fatal("Clear must drop rows")
	}
	for _, b := range s.Pixels() {
		if b != 0 {
			t.Fatal("cleared diagram must be transparent")
		}
	}
}
