package expreplay

import (
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/timestep"
)

func transition(id float64) timestep.Transition {
	return timestep.Transition{
		State:     []float64{id, -id},
		Action:    int(id),
		Reward:    id,
		NextState: []float64{id + 1, -id - 1},
		Terminal:  int(id)%2 == 0,
	}
}

func newMemory(t testing.TB, capacity int, seed uint64) *Memory {
	rng := rand.New(rand.NewSource(seed))
	m, err := New(capacity, 2, NewUniformSelector(rng))
	require.NoError(t, err)
	return m
}

func TestNewInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := New(0, 2, NewUniformSelector(rng))
	require.Error(t, err)

	_, err = New(-3, 2, NewUniformSelector(rng))
	require.Error(t, err)

	_, err = New(3, 0, NewUniformSelector(rng))
	require.Error(t, err)

	_, err = New(3, 2, nil)
	require.Error(t, err)
}

func TestCapacityInvariant(t *testing.T) {
	const capacity = 7
	m := newMemory(t, capacity, 1)

	for i := 0; i < 3*capacity+2; i++ {
		require.NoError(t, m.Add(transition(float64(i))))
		require.LessOrEqual(t, m.Len(), capacity)

		want := i + 1
		if want > capacity {
			want = capacity
		}
		require.Equal(t, want, m.Len())
	}
	require.Equal(t, capacity, m.Cap())
}

func TestFifoEviction(t *testing.T) {
	const capacity, extra = 5, 3
	m := newMemory(t, capacity, 1)

	for i := 0; i < capacity+extra; i++ {
		require.NoError(t, m.Add(transition(float64(i))))
	}

	stored := m.Transitions()
	require.Len(t, stored, capacity)
	for i, tr := range stored {
		require.Equal(t, float64(i+extra), tr.Reward)
	}
	for _, tr := range stored {
		require.GreaterOrEqual(t, tr.Reward, float64(extra))
	}
}

func TestEndToEndScenario(t *testing.T) {
	m := newMemory(t, 3, 42)

	// A, B, C, D
	for _, id := range []float64{1, 2, 3, 4} {
		require.NoError(t, m.Add(transition(id)))
	}

	var held []float64
	for _, tr := range m.Transitions() {
		held = append(held, tr.Reward)
	}
	require.Equal(t, []float64{2, 3, 4}, held)

	for i := 0; i < 50; i++ {
		batch, err := m.Sample(3)
		require.NoError(t, err)
		require.Equal(t, 3, batch.Size())
		for j, r := range batch.Rewards {
			require.Contains(t, []float64{2, 3, 4}, r)
			require.Equal(t, []float64{r, -r}, batch.States[2*j:2*j+2])
			require.Equal(t, []float64{r + 1, -r - 1},
				batch.NextStates[2*j:2*j+2])
			require.Equal(t, int(r), batch.Actions[j])
		}
	}
}

func TestSampleCoversAllEntries(t *testing.T) {
	m := newMemory(t, 3, 7)
	for _, id := range []float64{1, 2, 3, 4} {
		require.NoError(t, m.Add(transition(id)))
	}

	seen := map[float64]bool{}
	for i := 0; i < 200; i++ {
		batch, err := m.Sample(3)
		require.NoError(t, err)
		for _, r := range batch.Rewards {
			seen[r] = true
		}
	}

	var keys []float64
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	require.Equal(t, []float64{2, 3, 4}, keys)
}

func TestSampleErrors(t *testing.T) {
	m := newMemory(t, 4, 1)

	_, err := m.Sample(1)
	require.Error(t, err)
	require.True(t, IsEmptyBuffer(err))
	require.False(t, IsInsufficientSamples(err))

	require.NoError(t, m.Add(transition(1)))
	_, err = m.Sample(2)
	require.Error(t, err)
	require.True(t, IsInsufficientSamples(err))
	require.False(t, IsEmptyBuffer(err))

	_, err = m.Sample(1)
	require.NoError(t, err)
}

func TestAddInvalidFeatureSize(t *testing.T) {
	m := newMemory(t, 4, 1)

	tr := transition(1)
	tr.State = []float64{1, 2, 3}
	err := m.Add(tr)
	require.Error(t, err)
	require.Equal(t, 0, m.Len())

	// Errors carry the stack of the failed call
	_, ok := err.(interface{ StackTrace() errors.StackTrace })
	require.True(t, ok)
}

func TestStoredTransitionsAreCopies(t *testing.T) {
	m := newMemory(t, 2, 1)

	tr := transition(3)
	require.NoError(t, m.Add(tr))
	tr.State[0] = 100
	tr.NextState[1] = 100

	stored := m.Transitions()
	require.Equal(t, []float64{3, -3}, stored[0].State)
	require.Equal(t, []float64{4, -4}, stored[0].NextState)
}

func TestSampleReproducible(t *testing.T) {
	fill := func(m *Memory) {
		for i := 0; i < 10; i++ {
			require.NoError(t, m.Add(transition(float64(i))))
		}
	}

	m1, m2 := newMemory(t, 10, 99), newMemory(t, 10, 99)
	fill(m1)
	fill(m2)

	for i := 0; i < 5; i++ {
		b1, err := m1.Sample(4)
		require.NoError(t, err)
		b2, err := m2.Sample(4)
		require.NoError(t, err)
		require.Equal(t, b1, b2)
	}
}

func BenchmarkMemorySample(b *testing.B) {
	m := newMemory(b, 10_000, 1)
	for i := 0; i < 10_000; i++ {
		m.Add(transition(float64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Sample(32)
	}
}
