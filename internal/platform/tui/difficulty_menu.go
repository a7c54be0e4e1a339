package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/storage"
)

// difficultyChoice is one line of the difficulty menu.
type difficultyChoice struct {
	preset config.DifficultyPreset
	blurb  string
}

var difficultyChoices = []difficultyChoice{
	{config.DifficultyEasy, "progression at half speed"},
	{config.DifficultyNormal, "the classic run"},
	{config.DifficultyHard, "starts fast, fewer power-ups"},
	{config.DifficultyFixed, "no progression"},
}

// DifficultyKeyMap defines the key bindings for the difficulty menu.
type DifficultyKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultDifficultyKeyMap returns default key bindings.
func DefaultDifficultyKeyMap() DifficultyKeyMap {
	return DifficultyKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// DifficultyModel lets the player pick a preset before a run. When a store
// is available each line shows the best score on that preset.
type DifficultyModel struct {
	cursor   int
	best     map[string]int
	keys     DifficultyKeyMap
	width    int
	height   int
	chosen   bool
	quitting bool
}

// NewDifficultyModel creates a menu with the cursor on normal.
func NewDifficultyModel(store *storage.Store, width, height int) DifficultyModel {
	m := DifficultyModel{
		cursor: 1,
		best:   map[string]int{},
		keys:   DefaultDifficultyKeyMap(),
		width:  width,
		height: height,
	}
	if store != nil {
		if stats, err := store.Stats(); err == nil {
			for mode, st := range stats {
				m.best[mode] = st.BestScore
			}
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + len(difficultyChoices) - 1) % len(difficultyChoices)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(difficultyChoices)
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m DifficultyModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(0, m.height/2-6)))
	b.WriteString(centerText("M A T R I X   R U N N E R", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, c := range difficultyChoices {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-7s %-30s", cursor, c.preset, c.blurb)
		if best, ok := m.best[string(c.preset)]; ok {
			line += fmt.Sprintf(" best %d", best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen preset, or false if the menu was left.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return difficultyChoices[m.cursor].preset, true
}

// RunDifficultySelector shows the menu and returns the chosen preset.
// ok is false when the player quit instead.
func RunDifficultySelector(store *storage.Store, width, height int) (preset config.DifficultyPreset, ok bool, err error) {
	p := tea.NewProgram(NewDifficultyModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := final.(DifficultyModel)
	if !isModel {
		return "", false, nil
	}
	preset, ok = m.Selected()
	return preset, ok, nil
}
