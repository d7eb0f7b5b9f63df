// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/pkg/errors"
)

// Interface Experiment outlines structs that can run experiments.
//
// The Run() method runs all episodes until the maximum episode limit is
// reached or an error occurs. The RunEpisode() function runs a single
// training episode and Test() evaluates the greedy policy of the agent.
//
// Experiments report what happens to Sinks. Each finished episode is
// sent to every Sink's Episode() method and each evaluation to every
// Sink's Test() method. The Sink then determines what to do with the
// data, e.g. print it or save it to disk. New Sinks can be registered
// with an Experiment through the constructor or through an
// Experiment's Register() function.
type Experiment interface {
	Run() error
	RunEpisode() (EpisodeRecord, error)
	Test() (TestRecord, error)

	// Adds a new Sink to the (possibly already running) experiment.
	// Useful if you want to track data only after a specified event.
	Register(s Sink)

	// Closes all registered Sinks
	Close() error
}

// Config represents a configuration of an experiment.
type Config struct {
	MaxEpisodes int // Number of training episodes
	MaxSteps    int // Maximum number of steps within a single episode

	// Evaluation of the greedy policy. Every TestEvery episodes the
	// average score over TestSize greedy episodes is measured. A
	// TestEvery of 0 disables evaluation.
	TestEvery int
	TestSize  int
}

// Validate checks a Config to ensure it is a valid configuration of an
// experiment
func (c Config) Validate() error {
	if c.MaxEpisodes <= 0 {
		return errors.Errorf("validate: max episodes must be > 0 "+
			"\n\twant(>0) \n\thave(%v)", c.MaxEpisodes)
	}
	if c.MaxSteps <= 0 {
		return errors.Errorf("validate: max steps must be > 0 "+
			"\n\twant(>0) \n\thave(%v)", c.MaxSteps)
	}
	if c.TestEvery < 0 {
		return errors.Errorf("validate: test every must be >= 0 "+
			"\n\twant(>=0) \n\thave(%v)", c.TestEvery)
	}
	if c.TestEvery > 0 && c.TestSize <= 0 {
		return errors.Errorf("validate: test size must be > 0 when "+
			"testing \n\twant(>0) \n\thave(%v)", c.TestSize)
	}
	return nil
}

// testing returns whether the greedy policy should be evaluated after
// the episode with index episode
func (c Config) testing(episode int) bool {
	return c.TestEvery > 0 && episode%c.TestEvery == 0
}
