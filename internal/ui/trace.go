package ui

// Trace keeps the most recent densities for the overlay's sparkline.
type Trace struct {
	values []float64
	limit  int
}

// NewTrace holds at most limit values.
func NewTrace(limit int) *Trace {
	if limit < 2 {
		limit = 2
	}
	return &Trace{limit: limit}
}

// Push appends v, dropping the oldest value when full.
func (t *Trace) Push(v float64) {
	if len(t.values) == t.limit {
		copy(t.values, t.values[1:])
		t.values = t.values[:t.limit-1]
	}
	t.values = append(t.values, v)
}

// Reset drops all values.
func (t *Trace) Reset() { t.values = t.values[:0] }

// Len reports how many values are held.
func (t *Trace) Len() int { return len(t.values) }

// Points maps the held values into a w×h box with y growing downwards. The
// vertical scale runs from 0 to the largest held value.
func (t *Trace) Points(w, h float64) [][2]float64 {
	if len(t.values) < 2 {
		return nil
	}
	max := 0.0
	for _, v := range t.values {
		if v > max {
			max = v
		}
	}
	pts := make([][2]float64, len(t.values))
	step := w / float64(t.limit-1)
	for i, v := range t.values {
		y := h
		if max > 0 {
			y = h - v/max*h
		}
		pts[i] = [2]float64{float64(i) * step, y}
	}
	return pts
}
