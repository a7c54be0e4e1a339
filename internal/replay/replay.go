// Package replay records the inputs of a runner session and re-simulates
// them headlessly. The engine is deterministic for a given config and seed,
// so the inputs are all a recording needs.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

// FormatVersion is bumped whenever Recording changes incompatibly.
const FormatVersion = 1

// ErrVersion is returned when a file was written by an incompatible version.
var ErrVersion = errors.New("replay: unsupported format version")

// EventKind is one driver call.
type EventKind uint8

const (
	EventStart EventKind = iota + 1
	EventTap
	EventFrame
	EventExit
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventTap:
		return "tap"
	case EventFrame:
		return "frame"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is a driver call and the timestamp it was made with.
type Event struct {
	Kind EventKind     `msgpack:"k"`
	TS   time.Duration `msgpack:"ts"`
}

// Recording is everything needed to reproduce a session.
type Recording struct {
	Version int                 `msgpack:"v"`
	Seed    int64               `msgpack:"seed"`
	Mode    string              `msgpack:"mode"`
	Config  config.RunnerConfig `msgpack:"config"`
	Events  []Event             `msgpack:"events"`
}

// Taps counts the recorded taps.
func (r *Recording) Taps() int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == EventTap {
			n++
		}
	}
	return n
}

// Duration is the timestamp of the last event.
func (r *Recording) Duration() time.Duration {
	if len(r.Events) == 0 {
		return 0
	}
	return r.Events[len(r.Events)-1].TS
}

// Save writes the recording as msgpack.
func (r *Recording) Save(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// SaveFile writes the recording to path.
func (r *Recording) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if err := r.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a recording written by Save.
func Load(rd io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(rd).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if err := rec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return &rec, nil
}

// LoadFile reads a recording from path.
func LoadFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Play feeds the recorded events to a fresh driver and returns the
// snapshot after the last one. High scores are kept in memory only.
func Play(rec *Recording, logger *log.Logger) runner.Snapshot {
	opts := []runner.Option{runner.WithSeed(rec.Seed)}
	if logger != nil {
		opts = append(opts, runner.WithLogger(logger))
	}
	d := runner.NewDriver(rec.Config, opts...)

	var last runner.Snapshot
	for _, ev := range rec.Events {
		switch ev.Kind {
		case EventStart:
			d.Start(ev.TS)
		case EventTap:
			d.Tap(ev.TS)
		case EventFrame:
			d.Frame(ev.TS)
		case EventExit:
			// Exit drops the session; keep what the player last saw.
			last = d.Snapshot()
			d.Exit()
			continue
		}
		last = d.Snapshot()
	}
	return last
}
