package runner

import "github.com/vovakirdan/matrix-runner/internal/core"

// Obstacle is a hazard scrolling toward the player.
type Obstacle struct {
	Kind  ObstacleKind
	X, Y  float64
	W, H  float64
	Speed float64

	dodged bool // posture dodge already counted
}

// Box returns the collision box for this obstacle.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.W, o.H)
}

// PowerUp is a collectible scrolling toward the player.
type PowerUp struct {
	Kind  PowerUpKind
	X, Y  float64
	W, H  float64
	Speed float64
}

// Box returns the collision box for this power-up.
func (p PowerUp) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Particle is a cosmetic dot. Life is measured in reference frames.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  core.Color
	Life   float64
}

// Window is a lit or dark window relative to its building's top-left corner.
type Window struct {
	DX  float64 `msgpack:"dx"`
	DY  float64 `msgpack:"dy"`
	Lit bool    `msgpack:"lit"`
}

// Building is a parallax background block that wraps around.
type Building struct {
	X, W, H float64
	Speed   float64
	Shade   core.Color
	Windows []Window
}

// SpeedLine is a streak drawn at high difficulty.
type SpeedLine struct {
	X, Y   float64
	Length float64
	Speed  float64
}

// Entities holds every transient object of a session.
type Entities struct {
	Obstacles  []Obstacle
	PowerUps   []PowerUp
	Particles  []Particle
	Aura       []Particle
	SpeedLines []SpeedLine
	Buildings  []Building
}

// compact filters s in place, keeping the elements for which keep returns true.
func compact[T any](s []T, keep func(*T) bool) []T {
	valid := s[:0]
	for i := range s {
		if keep(&s[i]) {
			valid = append(valid, s[i])
		}
	}
	clear(s[len(valid):])
	return valid
}

// stepParticles moves particles by their per-frame velocity and ages them by f frames.
func stepParticles(ps []Particle, f float64) []Particle {
	for i := range ps {
		ps[i].X += ps[i].VX
		ps[i].Y += ps[i].VY
		ps[i].Life -= f
	}
	return compact(ps, func(p *Particle) bool { return p.Life > 0 })
}
