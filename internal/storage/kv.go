package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

// Int reads an integer key. Missing keys read as 0.
func (s *Store) Int(key string) (int, error) {
	var v int
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return v, nil
}

// SetInt writes an integer key, replacing any previous value.
func (s *Store) SetInt(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// RaiseInt stores value under key unless a larger value is already stored.
func (s *Store) RaiseInt(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot raise %s: %w", key, err)
	}
	return nil
}

// HighScoreGateway adapts a kv key to the runner's high score store.
type HighScoreGateway struct {
	store *Store
	key   string
}

// HighScoreGateway returns a gateway persisting the best score under key.
func (s *Store) HighScoreGateway(key string) *HighScoreGateway {
	return &HighScoreGateway{store: s, key: key}
}

// HighScore implements runner.HighScoreStore.
func (g *HighScoreGateway) HighScore() (int, error) {
	return g.store.Int(g.key)
}

// SetHighScore implements runner.HighScoreStore. Concurrent sessions share
// the key, so a lower score never replaces a higher one.
func (g *HighScoreGateway) SetHighScore(score int) error {
	return g.store.RaiseInt(g.key, score)
}

// Ensure the gateway implements the runner's store
var _ runner.HighScoreStore = (*HighScoreGateway)(nil)

// RunLog records crashed sessions of one mode in the run history.
type RunLog struct {
	store *Store
	mode  string
}

// RunLog returns a result sink writing to the runs table under mode.
func (s *Store) RunLog(mode string) *RunLog {
	return &RunLog{store: s, mode: mode}
}

// RecordRun implements runner.ResultSink.
func (l *RunLog) RecordRun(res runner.Result) error {
	_, err := l.store.SaveRun(Run{Mode: l.mode, Score: res.Score, Dodges: res.Dodges, Seed: res.Seed})
	return err
}

var _ runner.ResultSink = (*RunLog)(nil)
