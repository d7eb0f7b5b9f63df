package experiment

import (
	"fmt"
	"io"
	"time"

	"github.com/logrusorgru/aurora"
)

// Console is a Sink that prints the experiment's progress. Training
// episodes finish quickly, so at most one episode line is printed per
// interval. Test lines are always printed.
type Console struct {
	w        io.Writer
	au       aurora.Aurora
	interval time.Duration
	now      func() time.Time
	last     time.Time
}

// NewConsole returns a Console that prints to w, at most one episode
// per interval. If colors is true, the output is coloured with ANSI
// escape codes.
func NewConsole(w io.Writer, interval time.Duration, colors bool) *Console {
	return newConsole(w, interval, colors, time.Now)
}

func newConsole(w io.Writer, interval time.Duration, colors bool,
	now func() time.Time) *Console {
	return &Console{
		w:        w,
		au:       aurora.NewAurora(colors),
		interval: interval,
		now:      now,
		last:     now(),
	}
}

// Episode prints the record if more than the Console's interval has
// passed since the last episode was printed
func (c *Console) Episode(e EpisodeRecord) error {
	now := c.now()
	if now.Sub(c.last) <= c.interval {
		return nil
	}
	c.last = now

	_, err := fmt.Fprintf(c.w, "Episode: %v, Steps: %v, Score: %v, "+
		"Current exploration rate: %v, Time: %v\n",
		c.au.Cyan(e.Episode), e.Steps, c.au.Green(fmt.Sprintf("%.3f",
			e.Score)), fmt.Sprintf("%.4f", e.Exploration),
		e.Duration.Truncate(time.Millisecond))
	return err
}

// Test prints the record
func (c *Console) Test(t TestRecord) error {
	_, err := fmt.Fprintf(c.w, "%v %v: %v\n",
		c.au.Bold(c.au.Yellow("Test")), c.au.Cyan(t.Episode),
		c.au.Yellow(fmt.Sprintf("%.3f over %d games", t.AverageScore,
			t.Games)))
	return err
}

// Close implements the Sink interface
func (c *Console) Close() error {
	return nil
}
