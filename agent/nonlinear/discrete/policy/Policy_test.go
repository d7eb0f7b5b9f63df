package policy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLinearDecayEndpoints(t *testing.T) {
	l, err := NewLinearDecay(0.5, 0.1, 100)
	require.NoError(t, err)

	require.Equal(t, 0.5, l.At(0))
	require.InDelta(t, 0.3, l.At(50), 1e-12)
	require.InDelta(t, 0.1, l.At(100), 1e-12)
	require.Equal(t, l.At(100), l.At(101))
	require.Equal(t, l.At(100), l.At(1_000_000))
}

func TestLinearDecayMonotone(t *testing.T) {
	l, err := NewLinearDecay(1.0, 0.05, 37)
	require.NoError(t, err)

	prev := l.At(0)
	for step := 1; step <= 200; step++ {
		eps := l.At(step)
		require.LessOrEqual(t, eps, prev)
		require.GreaterOrEqual(t, eps, l.Final)
		require.LessOrEqual(t, eps, l.Init)
		if step >= l.AnnealSteps {
			require.Equal(t, l.Final, eps)
		}
		prev = eps
	}
}

func TestLinearDecayWithinBounds(t *testing.T) {
	pairs := []struct{ init, final float64 }{
		{1.0, 0.05},
		{0.1, 0.01},
		{0.5, 0.1},
		{0.3, 0.3},
		{1.0, 0.0},
		{0.9, 0.7},
	}
	for _, annealSteps := range []int{1, 3, 7, 37, 1000} {
		for _, p := range pairs {
			l, err := NewLinearDecay(p.init, p.final, annealSteps)
			require.NoError(t, err)

			for step := 0; step <= 2*annealSteps; step++ {
				eps := l.At(step)
				require.GreaterOrEqual(t, eps, p.final, "%+v at %d", l, step)
				require.LessOrEqual(t, eps, p.init, "%+v at %d", l, step)
				if step >= annealSteps {
					require.Equal(t, p.final, eps, "%+v at %d", l, step)
				}
			}
		}
	}
}

func TestNewLinearDecayInvalid(t *testing.T) {
	_, err := NewLinearDecay(0.5, 0.1, 0)
	require.Error(t, err)

	_, err = NewLinearDecay(0.5, 0.1, -10)
	require.Error(t, err)

	_, err = NewLinearDecay(1.5, 0.1, 10)
	require.Error(t, err)

	_, err = NewLinearDecay(0.5, -0.1, 10)
	require.Error(t, err)
}

func TestEGreedyGreedyWhenEpsilonZero(t *testing.T) {
	l, err := NewLinearDecay(0, 0, 10)
	require.NoError(t, err)
	p, err := NewEGreedy(l, 4, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	values := func() ([]float64, error) {
		return []float64{0.1, 0.9, 0.9, -2}, nil
	}
	for step := 0; step < 100; step++ {
		a, err := p.SelectAction(step, values)
		require.NoError(t, err)
		require.Equal(t, 1, a)
	}
}

func TestEGreedyRandomWhenEpsilonOne(t *testing.T) {
	l, err := NewLinearDecay(1, 1, 10)
	require.NoError(t, err)
	p, err := NewEGreedy(l, 3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	values := func() ([]float64, error) {
		t.Fatal("action values must not be requested when exploring")
		return nil, nil
	}

	counts := make([]int, 3)
	for step := 0; step < 3000; step++ {
		a, err := p.SelectAction(step, values)
		require.NoError(t, err)
		counts[a]++
	}
	for _, c := range counts {
		require.Greater(t, c, 800)
	}
}

func TestEGreedyErrors(t *testing.T) {
	l, err := NewLinearDecay(0, 0, 10)
	require.NoError(t, err)

	_, err = NewEGreedy(l, 0, rand.New(rand.NewSource(1)))
	require.Error(t, err)
	_, err = NewEGreedy(l, 2, nil)
	require.Error(t, err)

	p, err := NewEGreedy(l, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = p.Greedy(func() ([]float64, error) {
		return []float64{1, 2, 3}, nil
	})
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = p.Greedy(func() ([]float64, error) { return nil, boom })
	require.Equal(t, boom, errors.Cause(err))
}
