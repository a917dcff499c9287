package experiment

import (
	"context"
	"fmt"
	"io"

	"github.com/samuelfneumann/cliffwalk/utils/progressbar"
)

// Sweep is an experiment which runs SafeEpisodes for every agent
// Config in a Config's AgentConf, in order, and keeps the Config
// needing the fewest safe episodes.
type Sweep struct {
	config   Config
	trackers []ResultTracker
	results  []Result
	progress io.Writer
}

// NewSweep creates a new Sweep experiment. Each Result is sent to the
// trackers as soon as it is computed.
func NewSweep(c Config, t ...ResultTracker) (*Sweep, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newSweep: %w", err)
	}
	return &Sweep{config: c, trackers: t}, nil
}

// Register registers a ResultTracker with the Sweep so that Results
// generated during the experiment can be tracked and saved
func (s *Sweep) Register(t ResultTracker) {
	s.trackers = append(s.trackers, t)
}

// ShowProgress displays a progress bar on w while the Sweep runs
func (s *Sweep) ShowProgress(w io.Writer) {
	s.progress = w
}

// Run runs the Sweep over all agent Configs. If ctx is cancelled, Run
// stops and returns the error; the Results computed so far are kept.
func (s *Sweep) Run(ctx context.Context) error {
	n := s.config.AgentConf.Len()

	var bar *progressbar.ProgressBar
	if s.progress != nil {
		bar = progressbar.New(s.progress, "sweep", 40, n)
		defer bar.Close()
	}

	for i := len(s.results); i < n; i++ {
		c := s.config.AgentConf.At(i)
		r, err := SafeEpisodes(ctx, s.config.EnvConf, c, s.config.Trials,
			s.config.MaxEpisodes, s.config.Seed)
		if err != nil {
			return fmt.Errorf("run: config %d (%v): %w", i, c, err)
		}

		s.results = append(s.results, r)
		for _, t := range s.trackers {
			t.TrackResult(r)
		}

		if bar != nil {
			bar.Increment()
			bar.Display()
		}
	}
	return nil
}

// Results returns the Results computed so far, in Config order
func (s *Sweep) Results() []Result {
	return append([]Result(nil), s.results...)
}

// Best returns the Result with the smallest Max among those whose
// trials all converged. Ties go to the earliest Config. If no Config
// converged on every trial, ok is false.
func (s *Sweep) Best() (best Result, ok bool) {
	for _, r := range s.results {
		if !r.Converged() {
			continue
		}
		if !ok || r.Max < best.Max {
			best, ok = r, true
		}
	}
	return best, ok
}

// Save saves all data tracked by the ResultTrackers
func (s *Sweep) Save() error {
	for _, t := range s.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}
