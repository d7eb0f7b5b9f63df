package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gamelearn/experiment"
)

func TestChartClose(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "charts", "curves.html")
	c := NewChart(filename, "gridworld")

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Episode(experiment.EpisodeRecord{
			Episode: i,
			Score:   float64(i) / 2,
		}))
	}
	require.NoError(t, c.Test(experiment.TestRecord{
		Episode:      0,
		Games:        2,
		AverageScore: 0.75,
	}))
	require.NoError(t, c.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Contains(t, string(data), "Episode scores")
	require.Contains(t, string(data), "Greedy test scores")
}

func TestChartEmpty(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, NewChart(filename, "empty").Close())

	_, err := os.Stat(filename)
	require.NoError(t, err)
}
