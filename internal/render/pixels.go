package render

import (
	"image/color"
	"math"
)

// HeatPalette returns n colours running from black through red and yellow
// to white.
func HeatPalette(n int) []color.RGBA {
	if n < 2 {
		n = 2
	}
	stops := []color.RGBA{
		{0, 0, 0, 255},
		{128, 0, 16, 255},
		{230, 60, 0, 255},
		{255, 200, 0, 255},
		{255, 255, 255, 255},
	}
	out := make([]color.RGBA, n)
	for i := range out {
		pos := float64(i) / float64(n-1) * float64(len(stops)-1)
		k := int(pos)
		if k >= len(stops)-1 {
			out[i] = stops[len(stops)-1]
			continue
		}
		f := pos - float64(k)
		a, b := stops[k], stops[k+1]
		out[i] = color.RGBA{
			R: lerp(a.R, b.R, f),
			G: lerp(a.G, b.G, f),
			B: lerp(a.B, b.B, f),
			A: 255,
		}
	}
	return out
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// fillDensityRGBA maps values in [0, max] onto the palette and writes RGBA
// pixels into buf. Values outside the range are clamped; NaN maps to the
// first colour. An empty palette clears the buffer to transparent black.
func fillDensityRGBA(buf []byte, values []float64, max float64, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(values)])
		return
	}
	last := len(palette) - 1
	for i, v := range values {
		idx := 0
		if max > 0 && v > 0 {
			idx = int(v / max * float64(last))
			if idx > last {
				idx = last
			}
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// downsample averages src into len(dst) equal blocks. len(src) must be a
// multiple of len(dst).
func downsample(dst, src []float64) {
	block := len(src) / len(dst)
	if block <= 1 {
		copy(dst, src)
		return
	}
	for i := range dst {
		sum := 0.0
		for _, v := range src[i*block : (i+1)*block] {
			sum += v
		}
		dst[i] = sum / float64(block)
	}
}
