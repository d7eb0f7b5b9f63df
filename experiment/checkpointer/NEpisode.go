package checkpointer

import (
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/experiment"
)

// NEpisode implements checkpointing every N episodes. It is an
// experiment.Sink.
type NEpisode struct {
	interval int
	object   Parameterized // Object to save

	// filename returns the string filename of the file to save the
	// object in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file1.bin,
	// file2.bin, ..., fileK.bin), then simply use the static function
	// FilenameEnumerator, which will return a function that will
	// enumerate filenames. For example:
	//
	// n := NewNEpisode(10, object, FilenameEnumerator(0, "q", ".bin"))
	filename func() string
	last     string
}

// NewNEpisode returns a checkpointer that checkpoints the parameters
// of object every n episodes
func NewNEpisode(n int, object Parameterized,
	filename func() string) (*NEpisode, error) {
	if n <= 0 {
		return nil, errors.Errorf("newNEpisode: interval must be > 0 "+
			"\n\twant(>0) \n\thave(%v)", n)
	}
	if object == nil || filename == nil {
		return nil, errors.New("newNEpisode: object and filename must " +
			"not be nil")
	}
	return &NEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Episode checkpoints the tracked object after every interval-th
// episode
func (n *NEpisode) Episode(e experiment.EpisodeRecord) error {
	if (e.Episode+1)%n.interval != 0 {
		return nil
	}

	filename := n.filename()
	if err := Save(filename, n.object.OnlineParameters()); err != nil {
		return errors.Wrap(err, "episode")
	}
	n.last = filename
	log.V(1).Infof("checkpointer: saved parameters after episode %d to %v",
		e.Episode, filename)
	return nil
}

// Last returns the filename of the latest checkpoint, or the empty
// string if no checkpoint was saved yet
func (n *NEpisode) Last() string {
	return n.last
}

// Test implements the experiment.Sink interface
func (n *NEpisode) Test(experiment.TestRecord) error {
	return nil
}

// Close implements the experiment.Sink interface
func (n *NEpisode) Close() error {
	return nil
}
