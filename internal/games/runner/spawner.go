package runner

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/core"
)

// Spawner creates obstacles and power-ups from two independent accumulators.
type Spawner struct {
	obstacleClock time.Duration
	powerUpClock  time.Duration
}

// obstacleDue advances the obstacle clock and reports whether one should spawn.
func (sp *Spawner) obstacleDue(dt, interval time.Duration, difficulty float64) bool {
	sp.obstacleClock += dt
	if sp.obstacleClock > scaleInterval(interval, difficulty) {
		sp.obstacleClock = 0
		return true
	}
	return false
}

// powerUpDue advances the power-up clock; once it is past the interval each
// check also needs a successful roll.
func (sp *Spawner) powerUpDue(dt time.Duration, cfg config.RunnerPowerUps, difficulty float64, rng *rand.Rand) bool {
	sp.powerUpClock += dt
	if sp.powerUpClock > scaleInterval(cfg.Interval, difficulty) && rng.Float64() < cfg.Chance {
		sp.powerUpClock = 0
		return true
	}
	return false
}

func scaleInterval(d time.Duration, difficulty float64) time.Duration {
	if difficulty <= 0 {
		return d
	}
	return time.Duration(float64(d) / difficulty)
}

// newObstacle builds a random obstacle at the right edge.
func newObstacle(cfg config.RunnerConfig, rng *rand.Rand) Obstacle {
	kind := obstacleKinds[rng.Intn(len(obstacleKinds))]
	speed := cfg.Obstacles.SpeedMin + rng.Float64()*(cfg.Obstacles.SpeedMax-cfg.Obstacles.SpeedMin)
	return placeObstacle(cfg, kind, cfg.Playfield.Width, speed)
}

// placeObstacle builds an obstacle of the given kind with its top edge at the kind's lift.
func placeObstacle(cfg config.RunnerConfig, kind ObstacleKind, x, speed float64) Obstacle {
	var shape config.ObstacleShape
	switch kind {
	case ObstacleLaser:
		shape = cfg.Obstacles.Laser
	case ObstacleBullet:
		shape = cfg.Obstacles.Bullet
	}
	return Obstacle{
		Kind:  kind,
		X:     x,
		Y:     cfg.Playfield.GroundY() - shape.Lift,
		W:     shape.Width,
		H:     shape.Height,
		Speed: speed,
	}
}

// newPowerUp builds a random power-up at the right edge.
func newPowerUp(cfg config.RunnerConfig, rng *rand.Rand) PowerUp {
	kind := powerUpKinds[rng.Intn(len(powerUpKinds))]
	return placePowerUp(cfg, kind, cfg.Playfield.Width)
}

func placePowerUp(cfg config.RunnerConfig, kind PowerUpKind, x float64) PowerUp {
	return PowerUp{
		Kind:  kind,
		X:     x,
		Y:     cfg.Playfield.GroundY() - cfg.PowerUps.Lift,
		W:     cfg.PowerUps.Size,
		H:     cfg.PowerUps.Size,
		Speed: cfg.PowerUps.Speed,
	}
}

// newBuildings lays out the parallax skyline.
func newBuildings(cfg config.RunnerEffects, rng *rand.Rand) []Building {
	buildings := make([]Building, 0, cfg.Buildings)
	for i := 0; i < cfg.Buildings; i++ {
		b := Building{
			X:     float64(i) * cfg.BuildingSpacing,
			H:     100 + rng.Float64()*150,
			W:     80 + rng.Float64()*70,
			Speed: 0.5 + rng.Float64()*0.5,
			Shade: buildingShade(rng),
		}
		b.Windows = make([]Window, 5)
		for j := range b.Windows {
			b.Windows[j] = Window{
				DX:  10 + rng.Float64()*(b.W-20),
				DY:  10 + rng.Float64()*(b.H-20),
				Lit: rng.Float64() > 0.5,
			}
		}
		buildings = append(buildings, b)
	}
	return buildings
}

func buildingShade(rng *rand.Rand) core.Color {
	if rng.Float64() < 0.5 {
		return core.ColorDarkGreen
	}
	return core.ColorGray
}

// newSpeedLine builds a streak at the right edge.
func newSpeedLine(width, height float64, rng *rand.Rand) SpeedLine {
	return SpeedLine{
		X:      width,
		Y:      rng.Float64() * height,
		Length: 20 + rng.Float64()*30,
		Speed:  10 + rng.Float64()*10,
	}
}
