package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	embedded := embeddedRunner()
	hardcoded := DefaultRunnerConfig()

	if embedded != hardcoded {
		t.Errorf("embedded runner.yaml = %+v, expected %+v", embedded, hardcoded)
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, expected nil", err)
	}
}

func TestLoadRunnerDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() error = %v", err)
	}
	if cfg.Timing.DoubleTapGap != 250*time.Millisecond {
		t.Errorf("DoubleTapGap = %v, expected 250ms", cfg.Timing.DoubleTapGap)
	}
	if cfg.Playfield.GroundY() != 350 {
		t.Errorf("GroundY() = %v, expected 350", cfg.Playfield.GroundY())
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	data := []byte("timing:\n  fly_duration: 5s\nplayer:\n  lives: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() error = %v", err)
	}
	if cfg.Timing.FlyDuration != 5*time.Second {
		t.Errorf("FlyDuration = %v, expected 5s", cfg.Timing.FlyDuration)
	}
	if cfg.Player.Lives != 3 {
		t.Errorf("Lives = %d, expected 3", cfg.Player.Lives)
	}
	// Untouched keys keep their defaults
	if cfg.Player.JumpPower != 15 {
		t.Errorf("JumpPower = %v, expected 15", cfg.Player.JumpPower)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRunner() with missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); err == nil {
		t.Error("LoadRunner() with malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  width: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadRunner(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadRunner() error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero width", func(c *RunnerConfig) { c.Player.Width = 0 }},
		{"no lives", func(c *RunnerConfig) { c.Player.Lives = 0 }},
		{"zero grace", func(c *RunnerConfig) { c.Timing.Grace = 0 }},
		{"slide taller than body", func(c *RunnerConfig) { c.Player.SlideHeight = 90 }},
		{"inverted speed range", func(c *RunnerConfig) { c.Obstacles.SpeedMax = 1 }},
		{"chance above one", func(c *RunnerConfig) { c.PowerUps.Chance = 2 }},
		{"max below initial", func(c *RunnerConfig) { c.Difficulty.Max = 0.5 }},
		{"ground below playfield", func(c *RunnerConfig) { c.Playfield.GroundOffset = 500 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	dm := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 1.0},
		{50, 1.5},
		{200, 3.0},
		{1000, 3.0}, // capped
	}
	for _, tc := range tests {
		if got := dm.Multiplier(tc.score); got != tc.expected {
			t.Errorf("Multiplier(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}

	off := DefaultRunnerConfig().Difficulty
	off.Enabled = false
	if got := NewDifficultyManager(off).Multiplier(500); got != 1.0 {
		t.Errorf("Multiplier() with progression off = %v, expected 1.0", got)
	}
}

func TestSpawnInterval(t *testing.T) {
	cfg := DefaultRunnerConfig()
	dm := NewDifficultyManager(cfg.Difficulty)

	tests := []struct {
		score    int
		expected time.Duration
	}{
		{0, 1500 * time.Millisecond},
		{30, 1200 * time.Millisecond},
		{70, 800 * time.Millisecond},
		{500, 800 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := dm.SpawnInterval(cfg.Obstacles, tc.score); got != tc.expected {
			t.Errorf("SpawnInterval(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		initial  float64
		perPoint float64
		enabled  bool
	}{
		{DifficultyEasy, 1.0, 0.005, true},
		{DifficultyNormal, 1.0, 0.01, true},
		{DifficultyHard, 1.5, 0.01, true},
		{DifficultyFixed, 1.0, 0.01, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tc.preset)
			if cfg.Difficulty.Initial != tc.initial {
				t.Errorf("Initial = %v, expected %v", cfg.Difficulty.Initial, tc.initial)
			}
			if cfg.Difficulty.Progression.PerPoint != tc.perPoint {
				t.Errorf("PerPoint = %v, expected %v", cfg.Difficulty.Progression.PerPoint, tc.perPoint)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v, expected normal", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}
