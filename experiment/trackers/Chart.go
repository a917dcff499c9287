package trackers

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/cliffwalk/experiment"
)

// Chart renders the Results of an experiment as an HTML line chart
// with one point per agent Config: the most and mean episodes needed
// for the greedy policy to follow the optimal path.
type Chart struct {
	filename string
	title    string
	labels   []string
	max      []opts.LineData
	mean     []opts.LineData
}

// NewChart returns a Chart which is rendered to filename on Save
func NewChart(filename, title string) *Chart {
	return &Chart{filename: filename, title: title}
}

// TrackResult adds a point for r to the chart
func (c *Chart) TrackResult(r experiment.Result) {
	c.labels = append(c.labels, fmt.Sprint(r.Config))
	c.max = append(c.max, opts.LineData{Value: r.Max})
	c.mean = append(c.mean, opts.LineData{Value: r.Mean})
}

// Len returns the number of points in the chart
func (c *Chart) Len() int {
	return len(c.labels)
}

// Save renders the chart to disk
func (c *Chart) Save() error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: c.title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	line.SetXAxis(c.labels).
		AddSeries("max episodes", c.max).
		AddSeries("mean episodes", c.mean)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(c.filename)
	if err != nil {
		return fmt.Errorf("save: could not open chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("save: could not render chart: %w", err)
	}
	return f.Close()
}
