package solver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	G "gorgonia.org/gorgonia"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		data string
		want *Solver
	}{
		{
			`{"Type": "RMSProp", "Config": {"StepSize": 0.001, ` +
				`"Epsilon": 1e-8, "Rho": 0.9}}`,
			&Solver{RMSProp, RMSPropConfig{0.001, 1e-8, 0.9}},
		},
		{
			`{"Type": "Adam", "Config": {"StepSize": 0.01, ` +
				`"Epsilon": 1e-8, "Beta1": 0.9, "Beta2": 0.999}}`,
			&Solver{Adam, AdamConfig{0.01, 1e-8, 0.9, 0.999}},
		},
		{
			`{"Type": "Vanilla", "Config": {"StepSize": 0.1}}`,
			&Solver{Vanilla, VanillaConfig{0.1}},
		},
	}

	for _, test := range tests {
		var s Solver
		require.NoError(t, json.Unmarshal([]byte(test.data), &s))
		require.Equal(t, *test.want, s)

		// Marshalling must produce a document that unmarshals again
		data, err := json.Marshal(&s)
		require.NoError(t, err)
		var again Solver
		require.NoError(t, json.Unmarshal(data, &again))
		require.Equal(t, s, again)
	}
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	invalid := []string{
		`{"Config": {"StepSize": 0.1}}`,
		`{"Type": "Momentum", "Config": {"StepSize": 0.1}}`,
		`{"Type": "Vanilla", "Config": {"StepSize": -0.1}}`,
		`{"Type": "RMSProp", "Config": {"StepSize": 0.1, "Epsilon": 1e-8, ` +
			`"Rho": 1.5}}`,
		`not json`,
	}

	for _, data := range invalid {
		var s Solver
		require.Error(t, json.Unmarshal([]byte(data), &s), data)
	}
}

func TestCreate(t *testing.T) {
	rmsprop, err := NewDefaultRMSProp(0.001)
	require.NoError(t, err)
	require.IsType(t, &G.RMSPropSolver{}, rmsprop.Create(32, 1, 0.01))

	adam, err := NewDefaultAdam(0.001)
	require.NoError(t, err)
	require.IsType(t, &G.AdamSolver{}, adam.Create(32, 0, 0))

	vanilla, err := NewVanilla(0.1)
	require.NoError(t, err)
	require.IsType(t, &G.VanillaSolver{}, vanilla.Create(1, 5, 0))
}

func TestNewInvalid(t *testing.T) {
	_, err := NewVanilla(0)
	require.Error(t, err)

	_, err = NewAdam(0.1, 1e-8, 1, 0.999)
	require.Error(t, err)

	_, err = NewRMSProp(0.1, 0, 0.9)
	require.Error(t, err)

	_, err = newSolver(Adam, VanillaConfig{StepSize: 0.1})
	require.Error(t, err)
}
