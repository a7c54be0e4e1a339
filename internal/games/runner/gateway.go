package runner

// HighScoreKey is the storage key of the persisted best score.
const HighScoreKey = "matrixRunnerHighScore"

// HighScoreStore persists a single best score.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// MemoryHighScores keeps the best score in memory. It is the default store
// and the fallback when a durable one fails.
type MemoryHighScores struct {
	value int
}

// HighScore returns the stored score.
func (m *MemoryHighScores) HighScore() (int, error) {
	return m.value, nil
}

// SetHighScore replaces the stored score.
func (m *MemoryHighScores) SetHighScore(score int) error {
	m.value = score
	return nil
}

// Result summarizes a crashed session.
type Result struct {
	Score  int
	Dodges int
	Seed   int64
	Frames uint64
}

// ResultSink receives every crashed session, regardless of the high score.
type ResultSink interface {
	RecordRun(Result) error
}
