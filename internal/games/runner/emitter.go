package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/matrix-runner/internal/core"
)

// Burst describes a batch of particles: velocities are drawn from
// [-Spread/2, Spread/2) on both axes, radius and life uniformly from their ranges.
type Burst struct {
	X, Y                 float64
	Spread               float64
	RadiusMin, RadiusMax float64
	LifeMin, LifeMax     float64
	Color                core.Color
	Count                int
}

// Emitter spawns cosmetic particles from the session RNG.
type Emitter struct {
	rng *rand.Rand
	max int // cap on live particles per list, 0 means unlimited
}

// NewEmitter creates an emitter drawing from rng.
func NewEmitter(rng *rand.Rand, maxParticles int) Emitter {
	return Emitter{rng: rng, max: maxParticles}
}

// Emit appends the burst to dst. Particles beyond the cap are dropped.
func (em Emitter) Emit(dst []Particle, b Burst) []Particle {
	for i := 0; i < b.Count; i++ {
		if em.max > 0 && len(dst) >= em.max {
			break
		}
		dst = append(dst, Particle{
			X:      b.X,
			Y:      b.Y,
			VX:     (em.rng.Float64() - 0.5) * b.Spread,
			VY:     (em.rng.Float64() - 0.5) * b.Spread,
			Radius: b.RadiusMin + em.rng.Float64()*(b.RadiusMax-b.RadiusMin),
			Color:  b.Color,
			Life:   b.LifeMin + em.rng.Float64()*(b.LifeMax-b.LifeMin),
		})
	}
	return dst
}

// Aura appends intensity particles that drift inward toward (cx, cy).
func (em Emitter) Aura(dst []Particle, cx, cy float64, intensity int, c core.Color) []Particle {
	for i := 0; i < intensity; i++ {
		if em.max > 0 && len(dst) >= em.max {
			break
		}
		angle := em.rng.Float64() * 2 * math.Pi
		distance := 20 + em.rng.Float64()*30
		speed := 0.5 + em.rng.Float64()*1.5
		dst = append(dst, Particle{
			X:      cx + math.Cos(angle)*distance,
			Y:      cy + math.Sin(angle)*distance,
			VX:     -math.Cos(angle) * speed,
			VY:     -math.Sin(angle) * speed,
			Radius: 1 + em.rng.Float64()*2,
			Color:  c,
			Life:   20 + em.rng.Float64()*30,
		})
	}
	return dst
}

// Presets

func tapPuff(x, y float64) Burst {
	return Burst{X: x, Y: y, Spread: 6, RadiusMin: 1, RadiusMax: 3, LifeMin: 15, LifeMax: 30, Color: core.ColorMatrix, Count: 8}
}

func explosion(x, y float64) Burst {
	return Burst{X: x, Y: y, Spread: 16, RadiusMin: 1, RadiusMax: 4, LifeMin: 30, LifeMax: 70, Color: core.ColorNeon, Count: 30}
}

func powerUpBurst(kind PowerUpKind, x, y float64) Burst {
	return Burst{X: x, Y: y, Spread: 10, RadiusMin: 2, RadiusMax: 5, LifeMin: 20, LifeMax: 40, Color: powerUpColor(kind), Count: 20}
}

func dodgeSparks(kind ObstacleKind, x, y float64) Burst {
	b := Burst{X: x, Y: y, Spread: 10, RadiusMin: 2, RadiusMax: 5, LifeMin: 20, LifeMax: 50}
	switch kind {
	case ObstacleLaser:
		b.Color, b.Count = core.ColorNeon, 10
	case ObstacleBullet:
		b.Color, b.Count = core.ColorSpark, 15
	}
	return b
}

func powerUpColor(kind PowerUpKind) core.Color {
	switch kind {
	case PowerUpExtraLife:
		return core.ColorNeon
	case PowerUpInvisibility:
		return core.ColorSky
	case PowerUpFly:
		return core.ColorGold
	default:
		return core.ColorWhite
	}
}

func obstacleColor(kind ObstacleKind) core.Color {
	switch kind {
	case ObstacleLaser:
		return core.ColorNeon
	case ObstacleBullet:
		return core.ColorSpark
	default:
		return core.ColorWhite
	}
}

// stageColor maps a power stage to the player and aura colour.
func stageColor(stage int) core.Color {
	switch stage {
	case 3:
		return core.ColorNeon
	case 2:
		return core.ColorGold
	case 1:
		return core.ColorSky
	default:
		return core.ColorMatrix
	}
}
