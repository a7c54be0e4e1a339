package runner

import (
	"time"

	"github.com/vovakirdan/matrix-runner/internal/config"
	"github.com/vovakirdan/matrix-runner/internal/core"
)

// landingEpsilon absorbs float drift so a jump lands on the exact frame
// its closed form predicts.
const landingEpsilon = 1e-6

// Player is the runner's body and posture state.
type Player struct {
	X, Y    float64 // Top-left corner
	W, H    float64
	Posture Posture
	VY      float64 // Upward velocity while jumping

	Slide time.Duration // Remaining slide time
	Fly   time.Duration // Remaining fly time
	Grace time.Duration // Remaining post-posture invulnerability

	Lives int
}

// newPlayer places a running player on the ground.
func newPlayer(cfg config.RunnerConfig) Player {
	p := Player{
		X:     cfg.Playfield.Width * cfg.Player.XRatio,
		W:     cfg.Player.Width,
		H:     cfg.Player.Height,
		Lives: cfg.Player.Lives,
	}
	p.Y = cfg.Playfield.GroundY() - p.H
	return p
}

// Box returns the player's hitbox.
func (p Player) Box() core.Box {
	return core.NewBox(p.X, p.Y, p.W, p.H)
}

// Center returns the middle of the hitbox.
func (p Player) Center() (float64, float64) {
	return p.Box().Center()
}

func (p *Player) jump(cfg config.RunnerPlayer) {
	p.Posture = PostureJumping
	p.VY = cfg.JumpPower
}

func (p *Player) slide(cfg config.RunnerConfig) {
	p.Posture = PostureSliding
	p.Slide = cfg.Timing.SlideDuration
	p.H = cfg.Player.SlideHeight
	p.Y = cfg.Playfield.GroundY() - p.H
}

// fly forces the flying posture, cancelling any jump or slide.
func (p *Player) fly(cfg config.RunnerConfig) {
	p.Posture = PostureFlying
	p.Fly = cfg.Timing.FlyDuration
	p.Slide = 0
	p.VY = 0
	p.H = cfg.Player.Height
	p.Y = cfg.Playfield.GroundY() - p.H - cfg.Player.FlyAltitude
}

// land puts the player back on the ground in the running posture and starts grace.
func (p *Player) land(cfg config.RunnerConfig) {
	p.Posture = PostureRunning
	p.VY = 0
	p.Slide = 0
	p.Fly = 0
	p.H = cfg.Player.Height
	p.Y = cfg.Playfield.GroundY() - p.H
	p.Grace = cfg.Timing.Grace
}

// tick runs the posture countdowns and the jump arc.
// It reports the posture that ended this frame, if any.
func (p *Player) tick(cfg config.RunnerConfig, dt time.Duration) (ended Posture, ok bool) {
	if p.Grace > 0 {
		p.Grace = max(p.Grace-dt, 0)
	}

	switch p.Posture {
	case PostureRunning:
		return 0, false
	case PostureJumping:
		// Integrated once per frame regardless of dt.
		p.Y -= p.VY
		p.VY -= cfg.Player.Gravity
		if p.Y >= cfg.Playfield.GroundY()-p.H-landingEpsilon {
			p.land(cfg)
			return PostureJumping, true
		}
	case PostureSliding:
		p.Slide -= dt
		if p.Slide <= 0 {
			p.land(cfg)
			return PostureSliding, true
		}
	case PostureFlying:
		p.Fly -= dt
		if p.Fly <= 0 {
			p.land(cfg)
			return PostureFlying, true
		}
	}
	return 0, false
}
