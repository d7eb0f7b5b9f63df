package experiment

import (
	"fmt"
	"time"
)

// EpisodeRecord summarizes a single training episode
type EpisodeRecord struct {
	Episode     int           // Index of the episode, starting at 0
	Steps       int           // Number of environment steps taken
	Score       float64       // Game score at the end of the episode
	Exploration float64       // Exploration rate at the end of the episode
	Duration    time.Duration // Wall clock time of the episode
}

func (e EpisodeRecord) String() string {
	return fmt.Sprintf("Episode: %v, Steps: %v, Score: %v, Current "+
		"exploration rate: %v, Time: %v", e.Episode, e.Steps, e.Score,
		e.Exploration, e.Duration.Seconds())
}

// TestRecord summarizes an evaluation of the greedy policy
type TestRecord struct {
	Episode      int     // Index of the last training episode, -1 if none
	Games        int     // Number of greedy episodes played
	AverageScore float64 // Average game score over the greedy episodes
}

func (t TestRecord) String() string {
	return fmt.Sprintf("Test after episode %v: average score %v over %v "+
		"games", t.Episode, t.AverageScore, t.Games)
}

// Sink receives the records of an experiment, for example to print or
// persist them.
type Sink interface {
	Episode(EpisodeRecord) error
	Test(TestRecord) error
	Close() error
}
