package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parent were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetInt(runner.HighScoreKey, 42); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	v, err := store.Int(runner.HighScoreKey)
	if err != nil {
		t.Fatalf("Int() failed: %v", err)
	}
	if v != 42 {
		t.Errorf("Expected 42 after reopen, got %d", v)
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTemp(t)

	for _, r := range []Run{
		{Mode: "normal", Score: 100, Dodges: 12, Seed: 1},
		{Mode: "normal", Score: 50, Dodges: 3, Seed: 2},
		{Mode: "normal", Score: 200, Dodges: 30, Seed: 3},
		{Mode: "hard", Score: 500, Dodges: 40, Seed: 4},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
	}
	if runs[0].Dodges != 30 || runs[0].Seed != 3 {
		t.Errorf("Unexpected top run: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Mode != "hard" {
		t.Errorf("Expected 4 runs led by hard, got %+v", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Mode: "test", Score: (i + 1) * 100})
	}

	tests := []struct {
		limit int
		want  int
	}{
		{3, 3},
		{10, 5},
		{0, 5}, // default limit of 10
	}

	for _, tt := range tests {
		runs, err := store.TopRuns("test", tt.limit)
		if err != nil {
			t.Fatalf("TopRuns(%d) failed: %v", tt.limit, err)
		}
		if len(runs) != tt.want {
			t.Errorf("TopRuns(%d) returned %d runs, want %d", tt.limit, len(runs), tt.want)
		}
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestRun("normal")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty history, got %d", best)
	}

	store.SaveRun(Run{Mode: "normal", Score: 100})
	store.SaveRun(Run{Mode: "normal", Score: 300})
	store.SaveRun(Run{Mode: "normal", Score: 200})

	best, err = store.BestRun("normal")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best run 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	store.SaveRun(Run{Mode: "easy", Score: 100})
	store.SaveRun(Run{Mode: "easy", Score: 200})
	store.SaveRun(Run{Mode: "hard", Score: 300})

	if err := store.ClearRuns("easy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("easy", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	// Other modes are untouched
	runs, _ = store.TopRuns("hard", 10)
	if len(runs) != 1 {
		t.Errorf("Expected 1 hard run, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTemp(t)

	empty, err := store.ModeStats("normal")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.BestScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	store.SaveRun(Run{Mode: "normal", Score: 10, Dodges: 4})
	store.SaveRun(Run{Mode: "normal", Score: 30, Dodges: 9})
	store.SaveRun(Run{Mode: "hard", Score: 7, Dodges: 2})

	ms, err := store.ModeStats("normal")
	if err != nil {
		t.Fatalf("ModeStats() failed: %v", err)
	}
	if ms.Runs != 2 || ms.BestScore != 30 || ms.AvgScore != 20 || ms.BestDodges != 9 {
		t.Errorf("Unexpected stats: %+v", ms)
	}
	if ms.LastPlayed.IsZero() {
		t.Error("LastPlayed was not parsed")
	}

	all, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 modes, got %d", len(all))
	}
	if all["hard"].BestScore != 7 || all["hard"].Runs != 1 {
		t.Errorf("Unexpected hard stats: %+v", all["hard"])
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTemp(t)

	v, err := store.Int("missing")
	if err != nil {
		t.Fatalf("Int() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("Expected missing key to read 0, got %d", v)
	}

	for _, want := range []int{5, 3, 11} {
		if err := store.SetInt("k", want); err != nil {
			t.Fatalf("SetInt(%d) failed: %v", want, err)
		}
		got, err := store.Int("k")
		if err != nil {
			t.Fatalf("Int() failed: %v", err)
		}
		if got != want {
			t.Errorf("Int() = %d, want %d", got, want)
		}
	}
}

func TestHighScoreGatewayWithDriver(t *testing.T) {
	store := openTemp(t)
	if err := store.SetInt(runner.HighScoreKey, 0); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}

	gw := store.HighScoreGateway(runner.HighScoreKey)
	if err := gw.SetHighScore(9); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	hs, err := gw.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 9 {
		t.Errorf("HighScore() = %d, want 9", hs)
	}

	// Another session finishing lower must not overwrite it.
	if err := gw.SetHighScore(4); err != nil {
		t.Fatalf("SetHighScore() failed: %v", err)
	}
	if hs, _ = gw.HighScore(); hs != 9 {
		t.Errorf("HighScore() after lower write = %d, want 9", hs)
	}

	// A driver started against the gateway sees the persisted value.
	d := runner.NewDriver(config.DefaultRunnerConfig(), runner.WithGateway(gw), runner.WithSeed(1))
	d.Start(0)
	if got := d.Snapshot().HighScore; got != 9 {
		t.Errorf("Snapshot().HighScore = %d, want 9", got)
	}
}

func TestRunLog(t *testing.T) {
	store := openTemp(t)
	log := store.RunLog("hard")

	if err := log.RecordRun(runner.Result{Score: 12, Dodges: 6, Seed: 77, Frames: 900}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	runs, err := store.TopRuns("hard", 1)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if r := runs[0]; r.Score != 12 || r.Dodges != 6 || r.Seed != 77 || r.Mode != "hard" {
		t.Errorf("Unexpected run: %+v", r)
	}
}
