// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid runner config")

// RunnerConfig contains all tunables of the runner simulation.
type RunnerConfig struct {
	Playfield  RunnerPlayfield  `yaml:"playfield"`
	Player     RunnerPlayer     `yaml:"player"`
	Timing     RunnerTiming     `yaml:"timing"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	PowerUps   RunnerPowerUps   `yaml:"powerups"`
	Effects    RunnerEffects    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPlayfield defines the logical playfield in simulation units.
// Front ends scale it to whatever they draw on.
type RunnerPlayfield struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance from the bottom edge to the ground line
}

// GroundY returns the y coordinate of the ground line.
func (p RunnerPlayfield) GroundY() float64 {
	return p.Height - p.GroundOffset
}

// RunnerPlayer defines the player body and its movement.
type RunnerPlayer struct {
	XRatio      float64 `yaml:"x_ratio"` // Horizontal position as a fraction of the playfield width
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SlideHeight float64 `yaml:"slide_height"`
	JumpPower   float64 `yaml:"jump_power"`
	Gravity     float64 `yaml:"gravity"`
	FlyAltitude float64 `yaml:"fly_altitude"` // Height of the player's feet above ground while flying
	Lives       int     `yaml:"lives"`
}

// RunnerTiming holds every countdown of the simulation.
type RunnerTiming struct {
	FrameUnit     time.Duration `yaml:"frame_unit"` // dt that counts as one reference frame
	DoubleTapGap  time.Duration `yaml:"double_tap_gap"`
	SlideDuration time.Duration `yaml:"slide_duration"`
	FlyDuration   time.Duration `yaml:"fly_duration"`
	Grace         time.Duration `yaml:"grace"`
	ComboWindow   time.Duration `yaml:"combo_window"`
	Notification  time.Duration `yaml:"notification"`
	ComboText     time.Duration `yaml:"combo_text"`
	GameOverDelay time.Duration `yaml:"game_over_delay"`
}

// ObstacleShape is the size and placement of one obstacle kind.
type ObstacleShape struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Lift   float64 `yaml:"lift"` // Top edge distance above the ground line
}

// RunnerObstacles defines obstacle spawning and motion.
type RunnerObstacles struct {
	BaseInterval     time.Duration `yaml:"base_interval"`
	MinInterval      time.Duration `yaml:"min_interval"`
	IntervalPerPoint time.Duration `yaml:"interval_per_point"`
	SpeedMin         float64       `yaml:"speed_min"`
	SpeedMax         float64       `yaml:"speed_max"`
	Laser            ObstacleShape `yaml:"laser"`
	Bullet           ObstacleShape `yaml:"bullet"`
}

// RunnerPowerUps defines power-up spawning and effects.
type RunnerPowerUps struct {
	Interval            time.Duration `yaml:"interval"`
	Chance              float64       `yaml:"chance"` // Per-check probability once the interval elapsed
	Size                float64       `yaml:"size"`
	Lift                float64       `yaml:"lift"`
	Speed               float64       `yaml:"speed"`
	InvisibilityCharges int           `yaml:"invisibility_charges"`
}

// RunnerEffects controls the cosmetic layer.
type RunnerEffects struct {
	Buildings          int     `yaml:"buildings"`
	BuildingSpacing    float64 `yaml:"building_spacing"`
	SpeedLineThreshold float64 `yaml:"speed_line_threshold"` // Difficulty above which speed lines appear
	SpeedLineChance    float64 `yaml:"speed_line_chance"`
	AuraThreshold      int     `yaml:"aura_threshold"` // Power level above which the aura is emitted
	MaxParticles       int     `yaml:"max_particles"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Initial     float64           `yaml:"initial"` // Multiplier at score 0
	Max         float64           `yaml:"max"`
	Progression ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type     string  `yaml:"type"`      // "score" or "none"
	PerPoint float64 `yaml:"per_point"` // Multiplier added per scored point
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the starting multiplier for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 1.5
	default:
		return 1.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that every size, rate and duration is usable.
func (c RunnerConfig) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"playfield.width", c.Playfield.Width},
		{"playfield.height", c.Playfield.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.slide_height", c.Player.SlideHeight},
		{"player.jump_power", c.Player.JumpPower},
		{"player.gravity", c.Player.Gravity},
		{"obstacles.speed_min", c.Obstacles.SpeedMin},
		{"obstacles.laser.width", c.Obstacles.Laser.Width},
		{"obstacles.laser.height", c.Obstacles.Laser.Height},
		{"obstacles.bullet.width", c.Obstacles.Bullet.Width},
		{"obstacles.bullet.height", c.Obstacles.Bullet.Height},
		{"powerups.size", c.PowerUps.Size},
		{"powerups.speed", c.PowerUps.Speed},
		{"difficulty.initial", c.Difficulty.Initial},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("config: %w: %s must be positive, got %v", ErrInvalid, p.name, p.val)
		}
	}

	durations := []struct {
		name string
		val  time.Duration
	}{
		{"timing.frame_unit", c.Timing.FrameUnit},
		{"timing.double_tap_gap", c.Timing.DoubleTapGap},
		{"timing.slide_duration", c.Timing.SlideDuration},
		{"timing.fly_duration", c.Timing.FlyDuration},
		{"timing.grace", c.Timing.Grace},
		{"timing.combo_window", c.Timing.ComboWindow},
		{"timing.notification", c.Timing.Notification},
		{"timing.combo_text", c.Timing.ComboText},
		{"timing.game_over_delay", c.Timing.GameOverDelay},
		{"obstacles.base_interval", c.Obstacles.BaseInterval},
		{"obstacles.min_interval", c.Obstacles.MinInterval},
		{"powerups.interval", c.PowerUps.Interval},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("config: %w: %s must be positive, got %s", ErrInvalid, d.name, d.val)
		}
	}

	switch {
	case c.Player.Lives < 1:
		return fmt.Errorf("config: %w: player.lives must be at least 1, got %d", ErrInvalid, c.Player.Lives)
	case c.Player.XRatio <= 0 || c.Player.XRatio >= 1:
		return fmt.Errorf("config: %w: player.x_ratio must be in (0, 1), got %v", ErrInvalid, c.Player.XRatio)
	case c.Player.SlideHeight > c.Player.Height:
		return fmt.Errorf("config: %w: player.slide_height exceeds player.height", ErrInvalid)
	case c.Playfield.GroundOffset < 0 || c.Playfield.GroundOffset >= c.Playfield.Height:
		return fmt.Errorf("config: %w: playfield.ground_offset out of range", ErrInvalid)
	case c.Obstacles.SpeedMax < c.Obstacles.SpeedMin:
		return fmt.Errorf("config: %w: obstacles.speed_max below speed_min", ErrInvalid)
	case c.Obstacles.MinInterval > c.Obstacles.BaseInterval:
		return fmt.Errorf("config: %w: obstacles.min_interval above base_interval", ErrInvalid)
	case c.PowerUps.Chance < 0 || c.PowerUps.Chance > 1:
		return fmt.Errorf("config: %w: powerups.chance must be in [0, 1]", ErrInvalid)
	case c.PowerUps.InvisibilityCharges < 1:
		return fmt.Errorf("config: %w: powerups.invisibility_charges must be at least 1", ErrInvalid)
	case c.Difficulty.Max < c.Difficulty.Initial:
		return fmt.Errorf("config: %w: difficulty.max below difficulty.initial", ErrInvalid)
	}
	return nil
}
