package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/matrix-runner/internal/config"
)

// Power stage thresholds.
const (
	stage1Level = 25
	stage2Level = 50
	stage3Level = 75
	maxPower    = 100
)

// Progression tracks scoring, streaks and the derived difficulty.
type Progression struct {
	Score  int
	Combo  int
	Dodges int // Consecutive dodges, reset by a lost life

	Difficulty    float64
	SpawnInterval time.Duration
	PowerLevel    int
	PowerStage    int

	comboLeft time.Duration // Remaining combo window
}

// Points returns the score gained by the next pass at the given combo.
func Points(combo int) int {
	return 1 + combo/5
}

// pass records an obstacle leaving the playfield undamaged and returns the points gained.
func (pr *Progression) pass(window time.Duration) int {
	gained := Points(pr.Combo)
	pr.Score += gained
	pr.Combo++
	pr.Dodges++
	pr.comboLeft = window
	return gained
}

// dodge records a posture dodge.
func (pr *Progression) dodge() {
	pr.Dodges++
}

// breakStreak clears the combo and dodge streaks after a lost life.
func (pr *Progression) breakStreak() {
	pr.Combo = 0
	pr.Dodges = 0
	pr.comboLeft = 0
}

// tick expires the combo window.
func (pr *Progression) tick(dt time.Duration) {
	if pr.comboLeft <= 0 {
		return
	}
	pr.comboLeft -= dt
	if pr.comboLeft <= 0 {
		pr.comboLeft = 0
		pr.Combo = 0
	}
}

// recompute refreshes difficulty, spawn interval and power from score and combo.
func (pr *Progression) recompute(dm *config.DifficultyManager, o config.RunnerObstacles) {
	pr.Difficulty = dm.Multiplier(pr.Score)
	pr.SpawnInterval = dm.SpawnInterval(o, pr.Score)

	level := min(maxPower, pr.Score/2+pr.Combo*2)
	if level > pr.PowerLevel {
		pr.PowerLevel = level
		pr.PowerStage = StageFor(level)
	}
}

// StageFor quantizes a power level into stages 0 to 3.
func StageFor(level int) int {
	switch {
	case level >= stage3Level:
		return 3
	case level >= stage2Level:
		return 2
	case level >= stage1Level:
		return 1
	default:
		return 0
	}
}

// AuraIntensity returns the aura particles emitted per frame at a power level.
func AuraIntensity(level, threshold int) int {
	if level <= threshold {
		return 0
	}
	return level / stage1Level
}

// ComboText returns the streak banner for a combo, empty at 5 or below.
func ComboText(combo int) string {
	switch {
	case combo >= 15:
		return fmt.Sprintf("MATRIX MASTER! x%d", combo)
	case combo >= 10:
		return fmt.Sprintf("INCREDIBLE! x%d", combo)
	case combo > 5:
		return fmt.Sprintf("COMBO! x%d", combo)
	default:
		return ""
	}
}
