package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.Initial <= 0 {
		cfg.Initial = 1
	}
	if cfg.Max < cfg.Initial {
		cfg.Max = cfg.Initial
	}
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Multiplier returns the speed/spawn multiplier for a score:
// min(max, initial + score*per_point), or initial when progression is off.
func (d *DifficultyManager) Multiplier(score int) float64 {
	if !d.IsEnabled() {
		return d.cfg.Initial
	}
	level := d.cfg.Initial + float64(score)*d.cfg.Progression.PerPoint
	return clampF(level, d.cfg.Initial, d.cfg.Max)
}

// SpawnInterval returns the base obstacle interval for a score, shrinking by
// interval_per_point down to min_interval. Progression off keeps the base.
func (d *DifficultyManager) SpawnInterval(o RunnerObstacles, score int) time.Duration {
	if !d.IsEnabled() {
		return o.BaseInterval
	}
	interval := o.BaseInterval - time.Duration(score)*o.IntervalPerPoint
	if interval < o.MinInterval {
		interval = o.MinInterval
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
