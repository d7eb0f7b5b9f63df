package spec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Keys of evolutionary algorithm parameter maps
const (
	PopSize       = "pop_size"
	CxPb          = "cxpb"
	Mut           = "mut"
	NGen          = "ngen"
	GameBatchSize = "game_batch_size"
	CxIndPb       = "cxindpb"
	HofSize       = "hof_size"
	Elite         = "elite"
	Selection     = "selection"
	Sigma         = "sigma"
	CR            = "cr"
	F             = "f"
)

// EvolutionaryAlgorithm represents the parameters of a simple
// evolutionary algorithm with crossover and mutation
type EvolutionaryAlgorithm struct {
	Pop           int
	CxPb          float64 // Crossover probability of a pair of individuals
	Mut           float64 // Mutation probability
	NGen          int
	GameBatchSize int     // Games played per fitness evaluation
	CxIndPb       float64 // Per-gene crossover probability
	HofSize       int
	Elite         int
	Selection     string
}

// EvolutionaryAlgorithmFromMap constructs an EvolutionaryAlgorithm from
// a map of parameter names to values. Every key is required.
func EvolutionaryAlgorithmFromMap(
	m map[string]interface{}) (EvolutionaryAlgorithm, error) {
	f := fields{m: m}
	e := EvolutionaryAlgorithm{
		Pop:           f.getInt(PopSize),
		CxPb:          f.getFloat(CxPb),
		Mut:           f.getFloat(Mut),
		NGen:          f.getInt(NGen),
		GameBatchSize: f.getInt(GameBatchSize),
		CxIndPb:       f.getFloat(CxIndPb),
		HofSize:       f.getInt(HofSize),
		Elite:         f.getInt(Elite),
		Selection:     f.getString(Selection),
	}
	if f.err != nil {
		return EvolutionaryAlgorithm{}, errors.Wrap(f.err,
			"evolutionaryAlgorithmFromMap")
	}
	return e, nil
}

// Map returns the parameters as a map of parameter names to values
func (e EvolutionaryAlgorithm) Map() map[string]interface{} {
	return map[string]interface{}{
		PopSize:       e.Pop,
		CxPb:          e.CxPb,
		Mut:           e.Mut,
		NGen:          e.NGen,
		GameBatchSize: e.GameBatchSize,
		CxIndPb:       e.CxIndPb,
		HofSize:       e.HofSize,
		Elite:         e.Elite,
		Selection:     e.Selection,
	}
}

func (e EvolutionaryAlgorithm) String() string {
	return fmt.Sprintf("pop_size: %v, xover: %v/%v, mut: %v, hof: %v, "+
		"elite: %v, sel: %v", e.Pop, e.CxPb, e.CxIndPb, e.Mut, e.HofSize,
		e.Elite, e.Selection)
}

func (e EvolutionaryAlgorithm) PopSize() int        { return e.Pop }
func (e EvolutionaryAlgorithm) Generations() int    { return e.NGen }
func (e EvolutionaryAlgorithm) FitRepetitions() int { return e.GameBatchSize }
func (e EvolutionaryAlgorithm) HallOfFame() int     { return e.HofSize }

// EvolutionStrategy represents the parameters of an evolution strategy
// which perturbs individuals with Gaussian noise of scale Sigma
type EvolutionStrategy struct {
	Pop           int
	NGen          int
	GameBatchSize int
	HofSize       int
	Elite         int
	Sigma         float64
}

// EvolutionStrategyFromMap constructs an EvolutionStrategy from a map of
// parameter names to values. Every key is required.
func EvolutionStrategyFromMap(
	m map[string]interface{}) (EvolutionStrategy, error) {
	f := fields{m: m}
	e := EvolutionStrategy{
		Pop:           f.getInt(PopSize),
		NGen:          f.getInt(NGen),
		GameBatchSize: f.getInt(GameBatchSize),
		HofSize:       f.getInt(HofSize),
		Elite:         f.getInt(Elite),
		Sigma:         f.getFloat(Sigma),
	}
	if f.err != nil {
		return EvolutionStrategy{}, errors.Wrap(f.err,
			"evolutionStrategyFromMap")
	}
	return e, nil
}

// Map returns the parameters as a map of parameter names to values
func (e EvolutionStrategy) Map() map[string]interface{} {
	return map[string]interface{}{
		PopSize:       e.Pop,
		NGen:          e.NGen,
		GameBatchSize: e.GameBatchSize,
		HofSize:       e.HofSize,
		Elite:         e.Elite,
		Sigma:         e.Sigma,
	}
}

func (e EvolutionStrategy) String() string {
	return fmt.Sprintf("Evolution Strategy - pop_size: %v, hof: %v, "+
		"elite: %v, sigma: %v", e.Pop, e.HofSize, e.Elite, e.Sigma)
}

func (e EvolutionStrategy) PopSize() int        { return e.Pop }
func (e EvolutionStrategy) Generations() int    { return e.NGen }
func (e EvolutionStrategy) FitRepetitions() int { return e.GameBatchSize }
func (e EvolutionStrategy) HallOfFame() int     { return e.HofSize }

// DifferentialEvolution represents the parameters of differential
// evolution. Differential evolution keeps no elite.
type DifferentialEvolution struct {
	Pop           int
	NGen          int
	GameBatchSize int
	HofSize       int
	CR            float64 // Crossover probability
	F             float64 // Differential weight
}

// DifferentialEvolutionFromMap constructs a DifferentialEvolution from a
// map of parameter names to values. Every key is required.
func DifferentialEvolutionFromMap(
	m map[string]interface{}) (DifferentialEvolution, error) {
	f := fields{m: m}
	e := DifferentialEvolution{
		Pop:           f.getInt(PopSize),
		NGen:          f.getInt(NGen),
		GameBatchSize: f.getInt(GameBatchSize),
		HofSize:       f.getInt(HofSize),
		CR:            f.getFloat(CR),
		F:             f.getFloat(F),
	}
	if f.err != nil {
		return DifferentialEvolution{}, errors.Wrap(f.err,
			"differentialEvolutionFromMap")
	}
	return e, nil
}

// Map returns the parameters as a map of parameter names to values
func (e DifferentialEvolution) Map() map[string]interface{} {
	return map[string]interface{}{
		PopSize:       e.Pop,
		NGen:          e.NGen,
		GameBatchSize: e.GameBatchSize,
		HofSize:       e.HofSize,
		CR:            e.CR,
		F:             e.F,
	}
}

func (e DifferentialEvolution) String() string {
	return fmt.Sprintf("Differential Evolution - pop_size: %v, hof: %v, "+
		"cr: %v, f: %v", e.Pop, e.HofSize, e.CR, e.F)
}

// Elite returns the number of elite individuals, which is always 0
func (e DifferentialEvolution) Elite() int { return 0 }

func (e DifferentialEvolution) PopSize() int        { return e.Pop }
func (e DifferentialEvolution) Generations() int    { return e.NGen }
func (e DifferentialEvolution) FitRepetitions() int { return e.GameBatchSize }
func (e DifferentialEvolution) HallOfFame() int     { return e.HofSize }

var (
	_ Evolution = EvolutionaryAlgorithm{}
	_ Evolution = EvolutionStrategy{}
	_ Evolution = DifferentialEvolution{}
)
