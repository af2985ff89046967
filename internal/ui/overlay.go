//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the status line and a density sparkline on top of the
// space-time view. Key 1 toggles the status, key 2 the sparkline.
type Overlay struct {
	showStatus bool
	showTrace  bool

	status Status
	trace  *Trace

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay remembering the last traceLen densities.
func NewOverlay(traceLen int) *Overlay {
	o := &Overlay{showStatus: true, showTrace: true, trace: NewTrace(traceLen)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showStatus = !o.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTrace = !o.showTrace
	}
}

// Observe records the latest simulation status.
func (o *Overlay) Observe(s Status) {
	o.status = s
	o.trace.Push(s.Density)
}

// Reset forgets the density history.
func (o *Overlay) Reset() { o.trace.Reset() }

// Draw paints the overlay into a view of width w and height h.
func (o *Overlay) Draw(screen *ebiten.Image, w, h int) {
	if o.showTrace {
		o.drawTrace(screen, w, h)
	}
	if o.showStatus {
		o.drawRect(screen, 0, 0, float64(w), 18, color.RGBA{A: 160})
		ebitenutil.DebugPrintAt(screen, o.status.String(), 4, 1)
	}
}

func (o *Overlay) drawTrace(screen *ebiten.Image, w, h int) {
	const (
		margin = 8
		height = 60
	)
	boxW := float64(w) - 2*margin
	if boxW <= 0 || h < height+2*margin {
		return
	}
	top := float64(h) - height - margin
	o.drawRect(screen, margin, top, boxW, height, color.RGBA{A: 120})

	pts := o.trace.Points(boxW, height)
	line := color.RGBA{R: 120, G: 200, B: 255, A: 255}
	for i := 1; i < len(pts); i++ {
		o.drawLine(screen,
			margin+pts[i-1][0], top+pts[i-1][1],
			margin+pts[i][0], top+pts[i][1],
			1.5, line)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
