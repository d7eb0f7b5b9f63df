package initwfn

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		data string
		want InitWFn
	}{
		{
			`{"Type": "Gaussian", "Config": {"Mean": 0, "StdDev": 0.01}}`,
			InitWFn{Gaussian, GaussianConfig{0, 0.01}},
		},
		{
			`{"Type": "GlorotU", "Config": {"Gain": 1}}`,
			InitWFn{GlorotU, GlorotUConfig{1}},
		},
		{
			`{"Type": "Zeroes"}`,
			InitWFn{Zeroes, ZeroesConfig{}},
		},
		{
			`{"Type": "Constant", "Config": {"Value": 0.5}}`,
			InitWFn{Constant, ConstantConfig{0.5}},
		},
	}

	for _, test := range tests {
		var i InitWFn
		require.NoError(t, json.Unmarshal([]byte(test.data), &i))
		require.Equal(t, test.want, i)
	}
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	invalid := []string{
		`{"Config": {"Gain": 1}}`,
		`{"Type": "Orthogonal"}`,
		`{"Type": "Gaussian", "Config": {"Mean": 0, "StdDev": 0}}`,
		`{"Type": "Uniform", "Config": {"Low": 1, "High": -1}}`,
	}

	for _, data := range invalid {
		var i InitWFn
		require.Error(t, json.Unmarshal([]byte(data), &i), data)
	}
}

func TestSeededInitializersReproducible(t *testing.T) {
	configs := []Config{
		GaussianConfig{0, 0.01},
		UniformConfig{-1, 1},
		GlorotUConfig{1},
		GlorotNConfig{1},
		HeUConfig{1},
		HeNConfig{1},
	}

	for _, config := range configs {
		a := config.Create(rand.New(rand.NewSource(7)))(tensor.Float64, 4, 3)
		b := config.Create(rand.New(rand.NewSource(7)))(tensor.Float64, 4, 3)
		c := config.Create(rand.New(rand.NewSource(8)))(tensor.Float64, 4, 3)

		require.Len(t, a, 12)
		require.Equal(t, a, b, "%T", config)
		require.NotEqual(t, a, c, "%T", config)
	}
}

func TestGaussianMoments(t *testing.T) {
	initFn := GaussianConfig{Mean: 2, StdDev: 0.5}.Create(
		rand.New(rand.NewSource(1)))
	values := initFn(tensor.Float64, 100, 100).([]float64)

	mean, std := stat.MeanStdDev(values, nil)
	require.InDelta(t, 2, mean, 0.02)
	require.InDelta(t, 0.5, std, 0.02)
}

func TestGlorotUBounds(t *testing.T) {
	initFn := GlorotUConfig{Gain: 1}.Create(rand.New(rand.NewSource(1)))
	values := initFn(tensor.Float64, 10, 5).([]float64)

	limit := math.Sqrt(6.0 / 15.0)
	for _, v := range values {
		require.LessOrEqual(t, math.Abs(v), limit)
	}
}

func TestFloat32(t *testing.T) {
	initFn := UniformConfig{0, 1}.Create(rand.New(rand.NewSource(1)))
	values := initFn(tensor.Float32, 2, 2)
	require.IsType(t, []float32{}, values)
	require.Len(t, values, 4)
}

func TestDefault(t *testing.T) {
	d := Default()
	require.Equal(t, Gaussian, d.Type)
	require.NoError(t, d.Validate())
	require.NotNil(t, d.InitWFn(rand.New(rand.NewSource(1))))
}
