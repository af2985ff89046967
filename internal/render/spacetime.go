package render

import "image/color"

// SpaceTime keeps the last rows generations of a 1-D field as an RGBA image,
// newest row at the bottom.
type SpaceTime struct {
	cols, rows int
	max        float64
	palette    []color.RGBA

	ring  []byte
	head  int
	count int

	row []float64
	out []byte
}

// NewSpaceTime allocates a diagram cols pixels wide and rows tall. Densities
// at or above max saturate the palette.
func NewSpaceTime(cols, rows int, max float64) *SpaceTime {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpaceTime{
		cols:    cols,
		rows:    rows,
		max:     max,
		palette: HeatPalette(256),
		ring:    make([]byte, 4*cols*rows),
		row:     make([]float64, cols),
		out:     make([]byte, 4*cols*rows),
	}
}

// Size returns the diagram dimensions in pixels.
func (s *SpaceTime) Size() (int, int) { return s.cols, s.rows }

// SetMax changes the saturation density for subsequent rows.
func (s *SpaceTime) SetMax(max float64) { s.max = max }

// Push appends one generation. values is averaged down to the column count
// when it is wider.
func (s *SpaceTime) Push(values []float64) {
	if len(values) == 0 {
		return
	}
	row := s.row
	if len(values) < s.cols {
		row = row[:len(values)]
	}
	downsample(row, values)
	base := s.head * 4 * s.cols
	dst := s.ring[base : base+4*s.cols]
	clear(dst)
	fillDensityRGBA(dst, row, s.max, s.palette)
	s.head = (s.head + 1) % s.rows
	if s.count < s.rows {
		s.count++
	}
}

// Clear forgets every row.
func (s *SpaceTime) Clear() {
	clear(s.ring)
	s.head, s.count = 0, 0
}

// Rows reports how many generations are held.
func (s *SpaceTime) Rows() int { return s.count }

// Pixels returns the diagram in top-to-bottom order. Rows not yet filled are
// transparent and sit at the top. The slice is reused by the next call.
func (s *SpaceTime) Pixels() []byte {
	stride := 4 * s.cols
	clear(s.out)
	empty := s.rows - s.count
	oldest := (s.head - s.count + s.rows) % s.rows
	for i := 0; i < s.count; i++ {
		src := ((oldest + i) % s.rows) * stride
		dst := (empty + i) * stride
		copy(s.out[dst:dst+stride], s.ring[src:src+stride])
	}
	return s.out
}
