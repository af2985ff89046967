package app

import "github.com/spf13/pflag"

// Options controls the viewer window.
type Options struct {
	Scale         int
	Columns       int
	Rows          int
	StepsPerFrame int
	TPS           int
	PanelWidth    int
	MaxDensity    float64
}

// DefaultOptions returns the standard viewer settings.
func DefaultOptions() Options {
	return Options{
		Scale:         2,
		Columns:       512,
		Rows:          360,
		StepsPerFrame: 1,
		TPS:           60,
		PanelWidth:    260,
		MaxDensity:    2,
	}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&o.Scale, "scale", o.Scale, "pixel scale multiplier")
	fs.IntVar(&o.Columns, "columns", o.Columns, "diagram width in sites (the lattice is averaged down to it)")
	fs.IntVar(&o.Rows, "rows", o.Rows, "generations kept on screen")
	fs.IntVar(&o.StepsPerFrame, "steps-per-frame", o.StepsPerFrame, "generations advanced per tick")
	fs.IntVar(&o.TPS, "tps", o.TPS, "ticks per second")
	fs.IntVar(&o.PanelWidth, "panel", o.PanelWidth, "parameter panel width in pixels (0 hides it)")
	fs.Float64Var(&o.MaxDensity, "max-density", o.MaxDensity, "density that saturates the palette")
}

// Normalize fits the options to a lattice of n sites: the diagram never has
// more columns than sites and the column count divides n.
func (o Options) Normalize(n int) Options {
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.Rows < 1 {
		o.Rows = 1
	}
	if o.StepsPerFrame < 1 {
		o.StepsPerFrame = 1
	}
	if o.TPS < 1 {
		o.TPS = 60
	}
	if o.PanelWidth < 0 {
		o.PanelWidth = 0
	}
	if o.MaxDensity <= 0 {
		o.MaxDensity = 1
	}
	if o.Columns < 1 || o.Columns > n {
		o.Columns = n
	}
	for n%o.Columns != 0 {
		o.Columns--
	}
	return o
}

// WindowSize is the logical screen size for the options.
func (o Options) WindowSize() (int, int) {
	return o.Columns*o.Scale + o.PanelWidth, o.Rows * o.Scale
}
