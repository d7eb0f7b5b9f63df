package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 4)

	p.Increment()
	p.Increment()
	require.InDelta(t, 0.5, p.Progress(), 1e-12)

	require.NoError(t, p.Display())
	out := buf.String()
	require.Contains(t, out, "50.00%")
	require.Equal(t, 5, strings.Count(out, "█"))
}

func TestManualProgressBarSaturates(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 4, 2)

	for i := 0; i < 5; i++ {
		p.Increment()
	}
	require.Equal(t, 1.0, p.Progress())

	require.NoError(t, p.Display())
	require.Contains(t, buf.String(), "100.00%")
}
