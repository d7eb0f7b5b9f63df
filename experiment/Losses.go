package experiment

import (
	log "github.com/golang/glog"

	"github.com/samuelfneumann/gamelearn/agent"
)

// Losses tracks the updates of a learner. It is both an
// agent.Summarizer, receiving a summary of each update, and a Sink,
// which logs the mean loss of each training episode.
type Losses struct {
	updates int
	syncs   int

	episodeLoss    float64
	episodeUpdates int
}

// NewLosses returns a new Losses
func NewLosses() *Losses {
	return &Losses{}
}

// Summarize implements the agent.Summarizer interface
func (l *Losses) Summarize(s agent.UpdateSummary) {
	l.updates = s.Update
	if s.Synced {
		l.syncs++
	}
	l.episodeLoss += s.Loss
	l.episodeUpdates++
	log.V(2).Infof("experiment: update %d loss %v", s.Update, s.Loss)
}

// Updates returns the number of updates seen
func (l *Losses) Updates() int {
	return l.updates
}

// Syncs returns the number of target synchronizations seen
func (l *Losses) Syncs() int {
	return l.syncs
}

// MeanLoss returns the mean loss of the updates since the last
// finished episode, or 0 if there were none
func (l *Losses) MeanLoss() float64 {
	if l.episodeUpdates == 0 {
		return 0
	}
	return l.episodeLoss / float64(l.episodeUpdates)
}

// Episode logs the mean loss of the finished episode
func (l *Losses) Episode(e EpisodeRecord) error {
	if l.episodeUpdates > 0 {
		log.V(1).Infof("experiment: episode %d mean loss %v over %d "+
			"updates", e.Episode, l.MeanLoss(), l.episodeUpdates)
	}
	l.episodeLoss = 0
	l.episodeUpdates = 0
	return nil
}

// Test implements the Sink interface
func (l *Losses) Test(TestRecord) error {
	return nil
}

// Close implements the Sink interface
func (l *Losses) Close() error {
	return nil
}
