package experiment

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/gamelearn/utils/progressbar"
)

// Progress is a Sink that displays a progress bar over the training
// episodes of an experiment
type Progress struct {
	w   io.Writer
	bar *progressbar.ManualProgressBar
}

// NewProgress returns a Progress that is full after episodes training
// episodes and prints a bar of the given width to w
func NewProgress(w io.Writer, width, episodes int) *Progress {
	return &Progress{
		w:   w,
		bar: progressbar.NewManualProgressBar(w, width, episodes),
	}
}

// Episode advances and redraws the progress bar
func (p *Progress) Episode(EpisodeRecord) error {
	p.bar.Increment()
	return p.bar.Display()
}

// Test implements the Sink interface
func (p *Progress) Test(TestRecord) error {
	return nil
}

// Close ends the line of the progress bar
func (p *Progress) Close() error {
	_, err := fmt.Fprintln(p.w)
	return err
}
