package envconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	var c Config
	data := `{"Environment": "GridWorld", "Rows": 4, "Cols": 5,
		"GoalRow": 3, "GoalCol": 4, "EpisodeCutoff": 100}`
	require.NoError(t, json.Unmarshal([]byte(data), &c))
	require.Equal(t, NewConfig(GridWorld, 4, 5, 3, 4, 100), c)

	e, err := c.Create()
	require.NoError(t, err)
	require.Equal(t, 20, e.Features())
	require.Equal(t, 4, e.NumActions())
	require.Equal(t, "GridWorld(4x5, goal: (3, 4), cutoff: 100)", c.String())
}

func TestCreateInvalid(t *testing.T) {
	_, err := NewConfig("Chess", 8, 8, 0, 0, 100).Create()
	require.Error(t, err)

	_, err = NewConfig(GridWorld, 4, 4, 5, 0, 100).Create()
	require.Error(t, err)
}
