package web

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

// outbox is where a session sends its messages.
type outbox interface {
	SendJSON(Envelope)
	SendBinary([]byte)
}

// session owns one Driver. Only its goroutine touches the driver.
type session struct {
	driver        *runner.Driver
	out           outbox
	events        chan event
	log           *log.Logger
	interval      time.Duration
	snapshotEvery int
	epoch         time.Time

	frames int
	phase  runner.Phase
}

func newSession(d *runner.Driver, out outbox, logger *log.Logger, fps, snapshotEvery int) *session {
	if fps <= 0 {
		fps = 60
	}
	return &session{
		driver:        d,
		out:           out,
		events:        make(chan event, 16),
		log:           logger,
		interval:      time.Second / time.Duration(fps),
		snapshotEvery: max(1, snapshotEvery),
		phase:         d.Phase(),
	}
}

// run ticks the driver until ctx is cancelled.
func (s *session) run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.driver.Exit()

	s.epoch = time.Now()
	s.welcome()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			s.apply(ev)
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *session) welcome() {
	snap := s.driver.Snapshot()
	s.out.SendJSON(Envelope{T: MsgWelcome, Data: WelcomeMsg{
		Width:     snap.Width,
		Height:    snap.Height,
		GroundY:   snap.GroundY,
		HighScore: snap.HighScore,
		FPS:       int(time.Second / s.interval),
	}})
}

// apply handles a control event. A tap on the start screen starts a run.
func (s *session) apply(ev event) {
	ts := ev.at.Sub(s.epoch)
	phase := s.driver.Phase()

	switch ev.kind {
	case MsgStart:
		if phase == runner.PhaseIdle || phase == runner.PhaseGameOver {
			s.driver.Start(ts)
			s.frames = 0
		}
	case MsgTap:
		switch phase {
		case runner.PhaseIdle:
			s.driver.Start(ts)
			s.frames = 0
		case runner.PhaseRunning:
			s.driver.Tap(ts)
		}
	case MsgExit:
		s.driver.Exit()
	}
	s.announce()
}

// tick advances one frame and streams every snapshotEvery-th snapshot.
func (s *session) tick(now time.Time) {
	if !s.driver.Frame(now.Sub(s.epoch)) {
		s.announce()
		return
	}
	s.frames++
	if s.frames%s.snapshotEvery == 0 {
		s.sendSnapshot()
	}
	s.announce()
}

// announce sends a phase message when the phase changed, followed by the
// final snapshot of a session so clients see the end state.
func (s *session) announce() {
	phase := s.driver.Phase()
	if phase == s.phase {
		return
	}
	s.phase = phase

	snap := s.driver.Snapshot()
	s.out.SendJSON(Envelope{T: MsgPhase, Data: PhaseMsg{
		Phase:     phase.String(),
		Score:     snap.Score,
		HighScore: snap.HighScore,
		Message:   snap.GameOverMessage,
	}})
	if phase != runner.PhaseIdle {
		s.sendSnapshot()
	}
}

func (s *session) sendSnapshot() {
	data, err := msgpack.Marshal(s.driver.Snapshot())
	if err != nil {
		s.log.Error("snapshot encode failed", "err", err)
		return
	}
	s.out.SendBinary(data)
}
