package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-runner/internal/core"
)

// KeyMapper translates Bubble Tea input messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case " ", "up", "w", "enter":
		return core.ActionTap
	case "r":
		return core.ActionRestart
	case "b", "esc":
		return core.ActionBack
	case "tab":
		return core.ActionScoreboard
	}
	return core.ActionNone
}

// MapMouse turns a left button press into a tap.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionTap
	}
	return core.ActionNone
}
