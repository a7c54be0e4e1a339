package runner

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-runner/internal/config"
)

// deferredCall is a callback scheduled a number of frames of game time ahead.
// It only runs if the driver's token still matches the one it was created under.
type deferredCall struct {
	left  time.Duration
	token uint64
	fn    func()
}

// Driver runs sessions: it owns the lifecycle, turns timestamps into frame
// deltas, queues input and produces snapshots. A Driver belongs to exactly
// one goroutine.
type Driver struct {
	cfg     config.RunnerConfig
	seed    int64
	store   HighScoreStore
	memory  MemoryHighScores
	results ResultSink
	log     *log.Logger

	session     *Session
	sessions    int64
	sessionSeed int64
	phase       Phase
	token       uint64
	lastTS      time.Duration

	taps     TapDetector
	intents  []Gesture
	deferred []deferredCall

	highScore int
	gameOver  string
}

// Option configures a Driver.
type Option func(*Driver)

// WithGateway persists the high score in store.
func WithGateway(store HighScoreStore) Option {
	return func(d *Driver) {
		d.store = store
	}
}

// WithResults reports every crashed session to sink.
func WithResults(sink ResultSink) Option {
	return func(d *Driver) {
		d.results = sink
	}
}

// WithLogger sets the logger used for persistence and invariant warnings.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithSeed sets the seed of the first session; later sessions use seed+1, seed+2...
func WithSeed(seed int64) Option {
	return func(d *Driver) {
		d.seed = seed
	}
}

// NewDriver creates an idle driver.
func NewDriver(cfg config.RunnerConfig, opts ...Option) *Driver {
	d := &Driver{
		cfg:  cfg,
		seed: time.Now().UnixNano(),
		log:  log.New(io.Discard),
		taps: NewTapDetector(cfg.Timing.DoubleTapGap),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.store == nil {
		d.store = &d.memory
	}
	return d
}

// Phase returns the lifecycle phase.
func (d *Driver) Phase() Phase {
	return d.phase
}

// SessionSeed returns the RNG seed of the current or last session.
func (d *Driver) SessionSeed() int64 {
	return d.sessionSeed
}

// Config returns the configuration sessions are created with.
func (d *Driver) Config() config.RunnerConfig {
	return d.cfg
}

// Start resets all state and begins a session at timestamp ts.
// Callbacks scheduled by a previous session are invalidated.
func (d *Driver) Start(ts time.Duration) {
	d.token++
	d.deferred = d.deferred[:0]
	d.intents = d.intents[:0]
	d.taps.Reset()

	d.sessionSeed = d.seed + d.sessions
	d.sessions++
	d.session = NewSession(d.cfg, d.sessionSeed, d.log)
	d.highScore = d.loadHighScore()
	d.gameOver = ""
	d.phase = PhaseRunning
	d.lastTS = ts

	d.log.Debug("session started", "seed", d.sessionSeed, "high", d.highScore)
}

// Exit abandons the session and returns to idle. The score is not persisted.
// Calling Exit repeatedly is harmless.
func (d *Driver) Exit() {
	d.token++
	d.deferred = d.deferred[:0]
	d.intents = d.intents[:0]
	d.taps.Reset()
	if d.session != nil && d.phase == PhaseRunning {
		d.log.Debug("session abandoned", "score", d.session.Score())
	}
	d.session = nil
	d.phase = PhaseIdle
}

// Tap registers a raw press at timestamp ts. Ignored unless running.
func (d *Driver) Tap(ts time.Duration) {
	if d.phase != PhaseRunning {
		return
	}
	if g, ok := d.taps.Press(ts); ok {
		d.intents = append(d.intents, g)
	}
}

// Frame advances to timestamp ts and reports whether the caller should
// schedule another frame.
func (d *Driver) Frame(ts time.Duration) bool {
	if d.session == nil {
		return false
	}
	dt := ts - d.lastTS
	if dt < 0 {
		dt = 0
	}
	d.lastTS = ts

	d.runDeferred(dt)

	switch d.phase {
	case PhaseRunning:
		if g, ok := d.taps.Poll(ts); ok {
			d.intents = append(d.intents, g)
		}
		d.session.Advance(dt, d.intents)
		d.intents = d.intents[:0]
		if !d.session.Active() {
			d.crash()
		}
	case PhaseCrashed:
		d.session.Afterglow(dt)
	case PhaseIdle, PhaseGameOver:
		return false
	}
	return d.phase == PhaseRunning || d.phase == PhaseCrashed
}

// Snapshot returns the drawable state of the current frame.
func (d *Driver) Snapshot() Snapshot {
	if d.session == nil {
		return Snapshot{
			Phase:     d.phase,
			HighScore: d.highScore,
			Width:     d.cfg.Playfield.Width,
			Height:    d.cfg.Playfield.Height,
			GroundY:   d.cfg.Playfield.GroundY(),
		}
	}
	snap := d.session.snapshot()
	snap.Phase = d.phase
	snap.HighScore = d.highScore
	if d.phase == PhaseGameOver {
		snap.GameOverMessage = d.gameOver
	}
	return snap
}

// crash ends the session: persist the best score once and schedule the reveal.
func (d *Driver) crash() {
	d.phase = PhaseCrashed
	final := d.session.Score()
	d.log.Debug("session crashed", "score", final, "frames", d.session.Frame())

	if final > d.highScore {
		d.highScore = final
		d.memory.value = final
		if err := d.store.SetHighScore(final); err != nil {
			d.log.Warn("cannot persist high score, keeping it in memory", "score", final, "err", err)
		}
	}

	dodges := d.session.Progress().Dodges
	if d.results != nil {
		res := Result{Score: final, Dodges: dodges, Seed: d.sessionSeed, Frames: d.session.Frame()}
		if err := d.results.RecordRun(res); err != nil {
			d.log.Warn("cannot record run", "score", final, "err", err)
		}
	}

	d.gameOver = GameOverMessage(dodges)
	d.after(d.cfg.Timing.GameOverDelay, func() {
		d.phase = PhaseGameOver
	})
}

// loadHighScore reads the stored best, falling back to the in-memory value.
func (d *Driver) loadHighScore() int {
	hs, err := d.store.HighScore()
	if err != nil {
		d.log.Warn("cannot read high score, using in-memory value", "err", err)
		return max(d.memory.value, d.highScore)
	}
	d.memory.value = max(d.memory.value, hs)
	return hs
}

// after schedules fn to run once delay of frame time has passed in this session.
func (d *Driver) after(delay time.Duration, fn func()) {
	d.deferred = append(d.deferred, deferredCall{left: delay, token: d.token, fn: fn})
}

func (d *Driver) runDeferred(dt time.Duration) {
	if len(d.deferred) == 0 {
		return
	}
	due := make([]deferredCall, 0, len(d.deferred))
	d.deferred = compact(d.deferred, func(c *deferredCall) bool {
		c.left -= dt
		if c.left > 0 {
			return true
		}
		due = append(due, *c)
		return false
	})
	for _, c := range due {
		if c.token != d.token {
			continue
		}
		c.fn()
	}
}
