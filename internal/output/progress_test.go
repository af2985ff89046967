package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitstep/internal/sims/langevin"
)

func TestProgressLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "")
	require.NoError(t, p.Emit(langevin.Record{Time: 2.5, Density: 0.5, Wall: 1500 * time.Millisecond}))

	// A bytes.Buffer is not a terminal, so no styling is applied.
	assert.Equal(t, "[t=2.5] 0.50000000000 (1.5s)\n", buf.String())
}

func TestProgressPrefix(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "a=1.8")
	require.NoError(t, p.Emit(langevin.Record{Time: 1, Density: 1}))
	assert.Contains(t, buf.String(), "a=1.8 [t=1]")
}
