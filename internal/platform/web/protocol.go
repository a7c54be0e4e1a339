// Package web bridges browsers to the runner over WebSocket: JSON envelopes
// for control, msgpack binary frames for snapshots.
package web

import "encoding/json"

// Client -> Server message types
const (
	MsgStart = "start"
	MsgTap   = "tap"
	MsgExit  = "exit"
)

// Server -> Client message types
const (
	MsgWelcome = "welcome"
	MsgPhase   = "phase"
	MsgError   = "error"
)

// Envelope wraps all outgoing JSON messages with a type field.
type Envelope struct {
	T    string `json:"t"`
	Data any    `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages.
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// WelcomeMsg describes the playfield once per connection.
type WelcomeMsg struct {
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	GroundY   float64 `json:"ground"`
	HighScore int     `json:"high"`
	FPS       int     `json:"fps"`
}

// PhaseMsg announces a lifecycle change.
type PhaseMsg struct {
	Phase     string `json:"phase"`
	Score     int    `json:"score"`
	HighScore int    `json:"high"`
	Message   string `json:"msg,omitempty"`
}

// ErrorMsg reports a rejected client message.
type ErrorMsg struct {
	Msg string `json:"msg"`
}
