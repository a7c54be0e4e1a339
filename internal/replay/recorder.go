package replay

import (
	"slices"
	"time"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

// Recorder wraps a Driver and logs every call that changes its state.
// Frames that do nothing (idle or game over) are not recorded.
type Recorder struct {
	driver *runner.Driver
	rec    Recording
}

// NewRecorder creates a driver seeded with seed and records its inputs.
// opts are applied before the seed, so the recorded seed always wins.
func NewRecorder(cfg config.RunnerConfig, seed int64, mode string, opts ...runner.Option) *Recorder {
	opts = append(opts, runner.WithSeed(seed))
	return &Recorder{
		driver: runner.NewDriver(cfg, opts...),
		rec: Recording{
			Version: FormatVersion,
			Seed:    seed,
			Mode:    mode,
			Config:  cfg,
		},
	}
}

func (r *Recorder) add(kind EventKind, ts time.Duration) {
	r.rec.Events = append(r.rec.Events, Event{Kind: kind, TS: ts})
}

// Start implements tui.Controller.
func (r *Recorder) Start(ts time.Duration) {
	r.add(EventStart, ts)
	r.driver.Start(ts)
}

// Exit implements tui.Controller.
func (r *Recorder) Exit() {
	var ts time.Duration
	if n := len(r.rec.Events); n > 0 {
		ts = r.rec.Events[n-1].TS
	}
	r.add(EventExit, ts)
	r.driver.Exit()
}

// Tap implements tui.Controller.
func (r *Recorder) Tap(ts time.Duration) {
	if r.driver.Phase() != runner.PhaseRunning {
		return
	}
	r.add(EventTap, ts)
	r.driver.Tap(ts)
}

// Frame implements tui.Controller.
func (r *Recorder) Frame(ts time.Duration) bool {
	switch r.driver.Phase() {
	case runner.PhaseRunning, runner.PhaseCrashed:
		r.add(EventFrame, ts)
	}
	return r.driver.Frame(ts)
}

// Snapshot implements tui.Controller.
func (r *Recorder) Snapshot() runner.Snapshot { return r.driver.Snapshot() }

// Phase implements tui.Controller.
func (r *Recorder) Phase() runner.Phase { return r.driver.Phase() }

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() *Recording {
	rec := r.rec
	rec.Events = slices.Clone(r.rec.Events)
	return &rec
}
