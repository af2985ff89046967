//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// SpaceTimePainter uploads a SpaceTime diagram into an ebiten image.
type SpaceTimePainter struct {
	diagram *SpaceTime
	img     *ebiten.Image
}

// NewSpaceTimePainter allocates the GPU image for diagram.
func NewSpaceTimePainter(diagram *SpaceTime) *SpaceTimePainter {
	w, h := diagram.Size()
	return &SpaceTimePainter{diagram: diagram, img: ebiten.NewImage(w, h)}
}

// Blit uploads the diagram and draws it scaled at the origin of dst.
func (p *SpaceTimePainter) Blit(dst *ebiten.Image, scale int) {
	p.img.WritePixels(p.diagram.Pixels())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}
