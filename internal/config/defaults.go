package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Playfield: RunnerPlayfield{
			Width:        800,
			Height:       400,
			GroundOffset: 50,
		},
		Player: RunnerPlayer{
			XRatio:      0.2,
			Width:       40,
			Height:      60,
			SlideHeight: 30,
			JumpPower:   15,
			Gravity:     0.6,
			FlyAltitude: 100,
			Lives:       1,
		},
		Timing: RunnerTiming{
			FrameUnit:     16 * time.Millisecond,
			DoubleTapGap:  250 * time.Millisecond,
			SlideDuration: 1000 * time.Millisecond,
			FlyDuration:   2000 * time.Millisecond,
			Grace:         1000 * time.Millisecond,
			ComboWindow:   3000 * time.Millisecond,
			Notification:  2000 * time.Millisecond,
			ComboText:     1000 * time.Millisecond,
			GameOverDelay: 1500 * time.Millisecond,
		},
		Obstacles: RunnerObstacles{
			BaseInterval:     1500 * time.Millisecond,
			MinInterval:      800 * time.Millisecond,
			IntervalPerPoint: 10 * time.Millisecond,
			SpeedMin:         5,
			SpeedMax:         8,
			Laser:            ObstacleShape{Width: 60, Height: 10, Lift: 20},
			Bullet:           ObstacleShape{Width: 20, Height: 20, Lift: 70},
		},
		PowerUps: RunnerPowerUps{
			Interval:            10 * time.Second,
			Chance:              0.01,
			Size:                30,
			Lift:                70,
			Speed:               3,
			InvisibilityCharges: 2,
		},
		Effects: RunnerEffects{
			Buildings:          15,
			BuildingSpacing:    150,
			SpeedLineThreshold: 1.5,
			SpeedLineChance:    0.3,
			AuraThreshold:      20,
			MaxParticles:       800,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Initial: 1.0,
			Max:     3.0,
			Progression: ProgressionConfig{
				Type:     "score",
				PerPoint: 0.01,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "runner":
		return defaultRunnerYAML
	default:
		return nil
	}
}
