package core

// Action represents a semantic front-end action, abstracted from physical key presses.
// The runner itself only understands taps; the rest drive screens around it.
type Action int

const (
	ActionNone       Action = iota
	ActionTap               // Space, Up, Enter, mouse click - the one gameplay input
	ActionRestart           // R - play again after game over
	ActionBack              // B, Escape - leave the session for the start screen
	ActionScoreboard        // Tab - toggle the scoreboard
	ActionQuit              // Q, Ctrl+C - exit the program/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTap:
		return "Tap"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
