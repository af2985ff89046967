package output

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitstep/internal/sims/langevin"
)

func decay(a float64) []langevin.Record {
	var out []langevin.Record
	d := 1.0
	for t := 1.0; t <= 1000; t *= 2 {
		out = append(out, langevin.Record{Time: t, Density: d})
		d *= a
	}
	return out
}

func TestRenderDecay(t *testing.T) {
	var buf bytes.Buffer
	err := RenderDecay(&buf, DefaultPlotOptions(),
		Series{Name: "a=1.8", Records: decay(0.8)},
		Series{Name: "a=1.7", Records: decay(0.5)})
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 640, img.Bounds().Dy())
}

func TestRenderDecayNothingToPlot(t *testing.T) {
	var buf bytes.Buffer
	err := RenderDecay(&buf, DefaultPlotOptions(),
		Series{Name: "empty"},
		Series{Name: "absorbed", Records: []langevin.Record{{Time: 1, Density: 0}, {Time: 2, Density: 0}}})
	assert.True(t, errors.Is(err, ErrNothingToPlot))
	assert.Zero(t, buf.Len())
}

func TestDecades(t *testing.T) {
	lo, hi := decades(-2.3, 1.1)
	assert.Equal(t, -3.0, lo)
	assert.Equal(t, 2.0, hi)

	lo, hi = decades(1, 1)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)

	assert.Len(t, decadeTicks(-3, 2), 6)
}
