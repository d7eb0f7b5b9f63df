// Package expreplay implements a bounded experience replay memory that
// learners sample minibatches of transitions from.
package expreplay

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/timestep"
)

// Batch is a minibatch of transitions sampled from a Memory. States and
// NextStates are stored in row major order, one row per transition.
type Batch struct {
	States     []float64
	Actions    []int
	Rewards    []float64
	NextStates []float64
	Terminals  []bool
}

// Size returns the number of transitions in the batch
func (b Batch) Size() int {
	return len(b.Actions)
}

// Memory implements an experience replay buffer where elements are
// removed in a FiFo manner, a single element at a time. Transitions are
// copied into flat caches on insertion so that stored transitions can
// never be changed by the caller.
//
// Memory is not safe for concurrent use.
type Memory struct {
	stateCache     []float64
	actionCache    []int
	rewardCache    []float64
	nextStateCache []float64
	terminalCache  []bool

	currentInUsePos int
	isFull          bool

	// Outlines how data is sampled
	sampler Selector

	maxCapacity int
	featureSize int
}

// New returns a new Memory holding at most capacity transitions with
// states of featureSize features. The sampler determines how batches
// are drawn from the memory.
func New(capacity, featureSize int, sampler Selector) (*Memory, error) {
	if capacity <= 0 {
		return nil, errors.Errorf("new: capacity must be > 0 (have %d)",
			capacity)
	}
	if featureSize <= 0 {
		return nil, errors.Errorf("new: feature size must be > 0 (have %d)",
			featureSize)
	}
	if sampler == nil {
		return nil, errors.New("new: nil sampler")
	}

	return &Memory{
		stateCache:     make([]float64, capacity*featureSize),
		actionCache:    make([]int, capacity),
		rewardCache:    make([]float64, capacity),
		nextStateCache: make([]float64, capacity*featureSize),
		terminalCache:  make([]bool, capacity),

		sampler: sampler,

		maxCapacity: capacity,
		featureSize: featureSize,
	}, nil
}

// Add adds a transition to the Memory, overwriting the oldest stored
// transition if the Memory is full
func (m *Memory) Add(t timestep.Transition) error {
	if len(t.State) != m.featureSize || len(t.NextState) != m.featureSize {
		return errors.Errorf("add: invalid feature size \n\twant(%v)"+
			"\n\thave(%v, %v)", m.featureSize, len(t.State), len(t.NextState))
	}

	index := m.currentInUsePos

	stateInd := index * m.featureSize
	copy(m.stateCache[stateInd:stateInd+m.featureSize], t.State)
	copy(m.nextStateCache[stateInd:stateInd+m.featureSize], t.NextState)

	m.actionCache[index] = t.Action
	m.rewardCache[index] = t.Reward
	m.terminalCache[index] = t.Terminal

	m.currentInUsePos = (m.currentInUsePos + 1) % m.maxCapacity
	if m.currentInUsePos == 0 {
		m.isFull = true
	}
	return nil
}

// Sample samples and returns a batch of n transitions drawn from the
// Memory.
func (m *Memory) Sample(n int) (Batch, error) {
	if m.Len() == 0 {
		return Batch{}, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}
	if m.Len() < n {
		return Batch{}, &ExpReplayError{
			Op:  "sample",
			Err: errInsufficientSamples,
		}
	}

	indices := m.sampler.choose(m.Len(), n)

	batch := Batch{
		States:     make([]float64, n*m.featureSize),
		Actions:    make([]int, n),
		Rewards:    make([]float64, n),
		NextStates: make([]float64, n*m.featureSize),
		Terminals:  make([]bool, n),
	}
	for i, index := range indices {
		batchStartInd := i * m.featureSize
		expStartInd := index * m.featureSize
		copy(batch.States[batchStartInd:batchStartInd+m.featureSize],
			m.stateCache[expStartInd:expStartInd+m.featureSize])
		copy(batch.NextStates[batchStartInd:batchStartInd+m.featureSize],
			m.nextStateCache[expStartInd:expStartInd+m.featureSize])

		batch.Actions[i] = m.actionCache[index]
		batch.Rewards[i] = m.rewardCache[index]
		batch.Terminals[i] = m.terminalCache[index]
	}

	return batch, nil
}

// Transitions returns copies of the stored transitions, from oldest to
// newest
func (m *Memory) Transitions() []timestep.Transition {
	transitions := make([]timestep.Transition, 0, m.Len())
	for _, index := range m.insertOrder() {
		stateInd := index * m.featureSize

		state := make([]float64, m.featureSize)
		copy(state, m.stateCache[stateInd:stateInd+m.featureSize])
		nextState := make([]float64, m.featureSize)
		copy(nextState, m.nextStateCache[stateInd:stateInd+m.featureSize])

		transitions = append(transitions, timestep.Transition{
			State:     state,
			Action:    m.actionCache[index],
			Reward:    m.rewardCache[index],
			NextState: nextState,
			Terminal:  m.terminalCache[index],
		})
	}
	return transitions
}

// insertOrder returns the slots holding data, in the order the data was
// inserted
func (m *Memory) insertOrder() []int {
	order := make([]int, m.Len())
	start := 0
	if m.isFull {
		start = m.currentInUsePos
	}
	for i := range order {
		order[i] = (start + i) % m.maxCapacity
	}
	return order
}

// Len returns the current number of transitions in the Memory
func (m *Memory) Len() int {
	if m.isFull {
		return m.maxCapacity
	}
	return m.currentInUsePos
}

// Cap returns the maximum number of transitions the Memory can hold
func (m *Memory) Cap() int {
	return m.maxCapacity
}

// FeatureSize returns the number of features in each stored state
func (m *Memory) FeatureSize() int {
	return m.featureSize
}

// String returns the string representation of the Memory
func (m *Memory) String() string {
	baseStr := "Size: %v/%v \nStates: %v \nActions: %v \nRewards: %v " +
		"\nNext States: %v \nTerminals: %v"
	return fmt.Sprintf(baseStr, m.Len(), m.Cap(), m.stateCache,
		m.actionCache, m.rewardCache, m.nextStateCache, m.terminalCache)
}
