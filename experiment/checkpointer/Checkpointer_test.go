package checkpointer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gamelearn/agent"
	"github.com/samuelfneumann/gamelearn/experiment"
)

type parameters struct {
	params agent.Parameters
	calls  int
}

func (p *parameters) OnlineParameters() agent.Parameters {
	p.calls++
	return p.params.Clone()
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", "q.bin")
	want := agent.Parameters{{1, -2.5, 3}, {0.125}}

	require.NoError(t, Save(filename, want))

	have, err := Load(filename)
	require.NoError(t, err)
	require.True(t, want.Equal(have))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, "dir/q", ".bin")
	require.Equal(t, "dir/q1.bin", next())
	require.Equal(t, "dir/q2.bin", next())

	next = FilenameEnumerator(9, "q", ".gob")
	require.Equal(t, "q10.gob", next())
}

func TestNEpisode(t *testing.T) {
	dir := t.TempDir()
	object := &parameters{params: agent.Parameters{{1, 2}}}
	n, err := NewNEpisode(2, object,
		FilenameEnumerator(0, filepath.Join(dir, "q"), ".bin"))
	require.NoError(t, err)
	require.Empty(t, n.Last())

	for i := 0; i < 5; i++ {
		require.NoError(t, n.Episode(experiment.EpisodeRecord{Episode: i}))
		object.params[0][0]++
	}

	// Episodes 1 and 3 are checkpointed
	require.Equal(t, 2, object.calls)
	require.Equal(t, filepath.Join(dir, "q2.bin"), n.Last())

	params, err := Load(n.Last())
	require.NoError(t, err)
	require.Equal(t, agent.Parameters{{4, 2}}, params)

	params, err = Load(filepath.Join(dir, "q1.bin"))
	require.NoError(t, err)
	require.Equal(t, agent.Parameters{{2, 2}}, params)
}

func TestNewNEpisodeInvalid(t *testing.T) {
	object := &parameters{}
	_, err := NewNEpisode(0, object, FilenameEnumerator(0, "q", ".bin"))
	require.Error(t, err)

	_, err = NewNEpisode(1, nil, FilenameEnumerator(0, "q", ".bin"))
	require.Error(t, err)

	_, err = NewNEpisode(1, object, nil)
	require.Error(t, err)
}
