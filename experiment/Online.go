package experiment

import (
	"time"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gamelearn/agent"
	env "github.com/samuelfneumann/gamelearn/environment"
	ts "github.com/samuelfneumann/gamelearn/timestep"
)

// Online is an Experiment that trains an agent online. After each
// environment step the agent stores the transition and updates. The
// greedy policy of the agent is evaluated every TestEvery episodes.
type Online struct {
	env.Environment
	agent.Agent
	config   Config
	rng      *rand.Rand
	episodes int
	sinks    []Sink
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. Episode seeds are drawn from rng and
// the s parameter is a slice of Sinks which receive the records of
// the experiment.
func NewOnline(e env.Environment, a agent.Agent, config Config,
	rng *rand.Rand, s ...Sink) (*Online, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "newOnline")
	}
	if e == nil || a == nil {
		return nil, errors.New("newOnline: environment and agent must " +
			"not be nil")
	}
	if rng == nil {
		return nil, errors.New("newOnline: nil rng")
	}

	return &Online{
		Environment: e,
		Agent:       a,
		config:      config,
		rng:         rng,
		sinks:       s,
	}, nil
}

// Register registers a Sink with an Experiment so that data generated
// during the experiment can be tracked
func (o *Online) Register(s Sink) {
	o.sinks = append(o.sinks, s)
}

// Episodes returns the number of training episodes run so far
func (o *Online) Episodes() int {
	return o.episodes
}

// RunEpisode runs a single training episode of the experiment
func (o *Online) RunEpisode() (EpisodeRecord, error) {
	start := time.Now()
	step, err := o.Environment.Reset(o.rng.Uint64())
	if err != nil {
		return EpisodeRecord{}, errors.Wrap(err, "runEpisode")
	}

	steps := 0
	for !step.Last() && steps < o.config.MaxSteps {
		// Select action, step in environment
		action, err := o.Agent.SelectAction(step.Observation)
		if err != nil {
			return EpisodeRecord{}, errors.Wrap(err, "runEpisode")
		}
		next, err := o.Environment.Step(action)
		if err != nil {
			return EpisodeRecord{}, errors.Wrap(err, "runEpisode")
		}
		steps++

		// Observe the transition and step the agent
		if err := o.Agent.Store(ts.NewTransition(step, action,
			next)); err != nil {
			return EpisodeRecord{}, errors.Wrap(err, "runEpisode")
		}
		if err := o.Agent.Update(); err != nil {
			return EpisodeRecord{}, errors.Wrapf(err, "runEpisode: "+
				"episode %d", o.episodes)
		}

		step = next
	}

	if !step.Last() {
		log.Warningf("experiment: maximum number of steps (%d) within "+
			"episode %d exceeded", o.config.MaxSteps, o.episodes)
	}

	record := EpisodeRecord{
		Episode:     o.episodes,
		Steps:       steps,
		Score:       step.Score,
		Exploration: o.Agent.Exploration(),
		Duration:    time.Since(start),
	}
	o.episodes++
	return record, nil
}

// Test plays TestSize episodes with the greedy policy of the agent and
// returns the average game score. The agent does not learn from these
// episodes.
func (o *Online) Test() (TestRecord, error) {
	games := o.config.TestSize
	if games <= 0 {
		return TestRecord{}, errors.Errorf("test: cannot test with test "+
			"size %d", games)
	}

	total := 0.0
	for i := 0; i < games; i++ {
		step, err := o.Environment.Reset(o.rng.Uint64())
		if err != nil {
			return TestRecord{}, errors.Wrap(err, "test")
		}

		for steps := 0; !step.Last() && steps < o.config.MaxSteps; steps++ {
			action, err := o.Agent.GreedyAction(step.Observation)
			if err != nil {
				return TestRecord{}, errors.Wrap(err, "test")
			}
			step, err = o.Environment.Step(action)
			if err != nil {
				return TestRecord{}, errors.Wrap(err, "test")
			}
		}
		total += step.Score
	}

	return TestRecord{
		Episode:      o.episodes - 1,
		Games:        games,
		AverageScore: total / float64(games),
	}, nil
}

// Run runs the entire experiment for all episodes. Run stops at the
// first error, which includes the agent's training diverging.
func (o *Online) Run() error {
	for o.episodes < o.config.MaxEpisodes {
		record, err := o.RunEpisode()
		if err != nil {
			return errors.Wrap(err, "run")
		}
		for _, sink := range o.sinks {
			if err := sink.Episode(record); err != nil {
				return errors.Wrap(err, "run")
			}
		}

		if !o.config.testing(record.Episode) {
			continue
		}
		test, err := o.Test()
		if err != nil {
			return errors.Wrap(err, "run")
		}
		log.Info(test)
		for _, sink := range o.sinks {
			if err := sink.Test(test); err != nil {
				return errors.Wrap(err, "run")
			}
		}
	}
	return nil
}

// Close closes all registered Sinks, returning the first error
// encountered
func (o *Online) Close() error {
	var first error
	for _, sink := range o.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "close")
		}
	}
	return first
}
