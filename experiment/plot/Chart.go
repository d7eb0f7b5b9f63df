// Package plot implements experiment Sinks that plot learning curves
package plot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/experiment"
)

// Chart is an experiment.Sink that collects the score of each episode
// and the average score of each test. On Close, the learning curves
// are rendered to an HTML page.
type Chart struct {
	filename string
	title    string

	episodes []experiment.EpisodeRecord
	tests    []experiment.TestRecord
}

// NewChart returns a Chart that renders to filename
func NewChart(filename, title string) *Chart {
	return &Chart{filename: filename, title: title}
}

// Episode records the score of an episode
func (c *Chart) Episode(e experiment.EpisodeRecord) error {
	c.episodes = append(c.episodes, e)
	return nil
}

// Test records the average score of a test
func (c *Chart) Test(t experiment.TestRecord) error {
	c.tests = append(c.tests, t)
	return nil
}

// Close renders the learning curves
func (c *Chart) Close() error {
	if err := os.MkdirAll(filepath.Dir(c.filename), 0755); err != nil {
		return errors.Wrap(err, "close")
	}
	f, err := os.Create(c.filename)
	if err != nil {
		return errors.Wrap(err, "close")
	}
	defer f.Close()

	page := components.NewPage()
	page.PageTitle = c.title
	page.AddCharts(c.scores(), c.averages())

	if err := page.Render(f); err != nil {
		return errors.Wrap(err, "close: could not render chart")
	}
	return nil
}

func (c *Chart) scores() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Episode scores",
			Subtitle: c.title,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	steps := make([]string, 0, len(c.episodes))
	scores := make([]opts.LineData, 0, len(c.episodes))
	exploration := make([]opts.LineData, 0, len(c.episodes))
	for _, e := range c.episodes {
		steps = append(steps, fmt.Sprintf("%d", e.Episode))
		scores = append(scores, opts.LineData{Value: e.Score})
		exploration = append(exploration, opts.LineData{Value: e.Exploration})
	}

	line.SetXAxis(steps).
		AddSeries("score", scores).
		AddSeries("exploration rate", exploration)
	return line
}

func (c *Chart) averages() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Greedy test scores",
			Subtitle: c.title,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average score"}),
	)

	steps := make([]string, 0, len(c.tests))
	averages := make([]opts.LineData, 0, len(c.tests))
	for _, t := range c.tests {
		steps = append(steps, fmt.Sprintf("%d", t.Episode))
		averages = append(averages, opts.LineData{Value: t.AverageScore})
	}

	line.SetXAxis(steps).AddSeries("average score", averages)
	return line
}
