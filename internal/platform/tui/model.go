package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-runner/internal/core"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

// Controller is the game surface the terminal drives. *runner.Driver and
// the replay recorder both satisfy it.
type Controller interface {
	Start(ts time.Duration)
	Exit()
	Tap(ts time.Duration)
	Frame(ts time.Duration) bool
	Snapshot() runner.Snapshot
	Phase() runner.Phase
}

// Model is the Bubble Tea model hosting one runner controller.
type Model struct {
	ctrl    Controller
	screen  *core.Screen
	runtime core.RuntimeConfig
	keys    *KeyMapper
	epoch   time.Time
	now     func() time.Time

	store *storage.Store
	mode  string
	board *ScoreboardModel

	ticking  bool // a TickMsg is in flight
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithScores enables the scoreboard, listing runs of mode first.
func WithScores(store *storage.Store, mode string) ModelOption {
	return func(m *Model) {
		m.store = store
		m.mode = mode
	}
}

// WithClock replaces the wall clock used to timestamp taps.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel creates a model showing the start screen.
func NewModel(ctrl Controller, rc core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		ctrl:    ctrl,
		screen:  core.NewScreen(rc.ScreenW, rc.ScreenH),
		runtime: rc,
		keys:    NewKeyMapper(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.epoch = m.now()
	return m
}

// Init waits for the first tap.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		if m.board != nil {
			return m, nil
		}
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleAction applies a mapped key or mouse action.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	ts := m.now().Sub(m.epoch)
	phase := m.ctrl.Phase()

	switch action {
	case core.ActionQuit:
		m.ctrl.Exit()
		m.quitting = true
		return m, tea.Quit

	case core.ActionTap:
		switch phase {
		case runner.PhaseIdle:
			m.ctrl.Start(ts)
			return m.ensureTicking()
		case runner.PhaseRunning:
			m.ctrl.Tap(ts)
		}

	case core.ActionRestart:
		if phase == runner.PhaseGameOver {
			m.ctrl.Start(ts)
			return m.ensureTicking()
		}

	case core.ActionBack:
		if phase != runner.PhaseIdle {
			m.ctrl.Exit()
		}

	case core.ActionScoreboard:
		if phase != runner.PhaseRunning && m.store != nil {
			b := NewScoreboardModel(m.store, m.mode, m.runtime.ScreenW, m.runtime.ScreenH)
			m.board = &b
		}
	}

	return m, nil
}

// handleTick advances one frame and schedules the next while the controller wants frames.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	m.ticking = false
	if !m.ctrl.Frame(t.Sub(m.epoch)) {
		return m, nil
	}
	return m.ensureTicking()
}

func (m Model) ensureTicking() (tea.Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.runtime.FrameInterval())
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	b, ok := next.(ScoreboardModel)
	if !ok {
		return m, nil
	}
	switch {
	case b.IsQuitting():
		m.ctrl.Exit()
		m.quitting = true
		return m, tea.Quit
	case b.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &b
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	snap := m.ctrl.Snapshot()
	switch snap.Phase {
	case runner.PhaseIdle:
		m.drawStart(snap)
	case runner.PhaseGameOver:
		DrawSnapshot(m.screen, snap)
		m.drawGameOver(snap)
	default:
		DrawSnapshot(m.screen, snap)
	}
	return RenderScreen(m.screen)
}

func (m Model) drawStart(snap runner.Snapshot) {
	m.screen.Clear()
	drawMessageBox(m.screen, core.ColorMatrix,
		"M A T R I X   R U N N E R",
		"",
		"Tap to start: space, up, enter or click",
		"Tap to jump, double tap to slide",
		fmt.Sprintf("High score: %d", snap.HighScore),
		"",
		m.footer(),
	)
}

func (m Model) drawGameOver(snap runner.Snapshot) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d   High score: %d", snap.Score, snap.HighScore),
	}
	if snap.GameOverMessage != "" {
		lines = append(lines, snap.GameOverMessage)
	}
	lines = append(lines, "", "R: play again  B: back  "+m.footer())
	drawMessageBox(m.screen, core.ColorNeon, lines...)
}

func (m Model) footer() string {
	if m.store != nil {
		return "Tab: scores  Q: quit"
	}
	return "Q: quit"
}

// Run starts the Bubble Tea program for ctrl.
func Run(ctrl Controller, rc core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(ctrl, rc, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // clicks are taps
	)

	_, err := p.Run()
	return err
}
