// Package runner implements the Matrix Runner simulation: an endless runner
// where the player jumps over lasers, slides under bullets and picks up
// power-ups. The package is headless; front ends draw Snapshots and feed taps.
package runner

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-runner/internal/config"
)

// Notification texts.
const (
	noticeExtraLife    = "Extra life! +1"
	noticeLifeLost     = "Life lost!"
	noticeInvisEnded   = "Invisibility ended!"
	noticeFlyEnded     = "Fly mode ended!"
	noticeInvisibility = "Invisibility! Next %d obstacles"
	noticeFly          = "Fly mode! %d seconds"
)

// notice is a text overlay with a fade countdown.
type notice struct {
	text string
	left time.Duration
}

func (n *notice) show(text string, ttl time.Duration) {
	n.text = text
	n.left = ttl
}

func (n *notice) tick(dt time.Duration) {
	if n.left <= 0 {
		return
	}
	n.left -= dt
	if n.left <= 0 {
		n.text = ""
		n.left = 0
	}
}

// Session is the mutable state of one run, from start to crash.
// It is owned by a single goroutine and never locked.
type Session struct {
	cfg  config.RunnerConfig
	diff *config.DifficultyManager
	rng  *rand.Rand
	emit Emitter
	log  *log.Logger

	spawner  Spawner
	player   Player
	ents     Entities
	progress Progression

	invisibility int // Remaining obstacle passes with invisibility
	notice       notice
	comboText    notice

	active  bool
	crashed bool
	frame   uint64
	elapsed time.Duration

	lastScore int
}

// NewSession creates a running session seeded for reproducible play.
func NewSession(cfg config.RunnerConfig, seed int64, logger *log.Logger) *Session {
	rng := rand.New(rand.NewSource(seed))
	s := &Session{
		cfg:    cfg,
		diff:   config.NewDifficultyManager(cfg.Difficulty),
		rng:    rng,
		emit:   NewEmitter(rng, cfg.Effects.MaxParticles),
		log:    logger,
		player: newPlayer(cfg),
		active: true,
	}
	s.ents.Buildings = newBuildings(cfg.Effects, rng)
	s.progress.recompute(s.diff, cfg.Obstacles)
	return s
}

// Active reports whether the session still advances.
func (s *Session) Active() bool { return s.active }

// Crashed reports whether the session ended on a fatal hit.
func (s *Session) Crashed() bool { return s.crashed }

// Score returns the current score.
func (s *Session) Score() int { return s.progress.Score }

// Player returns a copy of the player state.
func (s *Session) Player() Player { return s.player }

// Progress returns a copy of the progression state.
func (s *Session) Progress() Progression { return s.progress }

// Frame returns the number of advanced frames.
func (s *Session) Frame() uint64 { return s.frame }

// frames converts dt into reference frames.
func (s *Session) frames(dt time.Duration) float64 {
	return float64(dt) / float64(s.cfg.Timing.FrameUnit)
}

// Advance steps the simulation by dt. Intents are applied before anything
// else moves; they are dropped unless the player is running.
func (s *Session) Advance(dt time.Duration, intents []Gesture) {
	if !s.active {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.elapsed += dt
	f := s.frames(dt)

	s.applyIntents(intents)
	s.tickTimers(dt)
	s.spawn(dt)
	s.moveObstacles(f)

	if s.active {
		s.movePowerUps(f)
		s.updateBackground(f)
	}
	s.ents.Particles = stepParticles(s.ents.Particles, f)

	if s.active {
		s.progress.recompute(s.diff, s.cfg.Obstacles)
		s.emitAura()
	}
	s.ents.Aura = stepParticles(s.ents.Aura, f)

	s.checkInvariants()
}

// Afterglow ages cosmetic particles of a crashed session so the explosion
// plays out while the game-over reveal is pending. Gameplay state is frozen.
func (s *Session) Afterglow(dt time.Duration) {
	if !s.crashed || dt <= 0 {
		return
	}
	f := s.frames(dt)
	s.ents.Particles = stepParticles(s.ents.Particles, f)
	s.ents.Aura = stepParticles(s.ents.Aura, f)
}

func (s *Session) applyIntents(intents []Gesture) {
	for _, g := range intents {
		if s.player.Posture != PostureRunning {
			continue
		}
		switch g {
		case GestureTap:
			s.player.jump(s.cfg.Player)
		case GestureDoubleTap:
			s.player.slide(s.cfg)
		default:
			continue
		}
		s.ents.Particles = s.emit.Emit(s.ents.Particles, tapPuff(s.player.X, s.player.Y))
	}
}

func (s *Session) tickTimers(dt time.Duration) {
	s.notice.tick(dt)
	s.comboText.tick(dt)
	s.progress.tick(dt)

	if ended, ok := s.player.tick(s.cfg, dt); ok && ended == PostureFlying {
		s.notify(noticeFlyEnded)
	}
}

func (s *Session) spawn(dt time.Duration) {
	d := s.progress.Difficulty
	if s.spawner.obstacleDue(dt, s.progress.SpawnInterval, d) {
		s.ents.Obstacles = append(s.ents.Obstacles, newObstacle(s.cfg, s.rng))
	}
	if s.spawner.powerUpDue(dt, s.cfg.PowerUps, d, s.rng) {
		s.ents.PowerUps = append(s.ents.PowerUps, newPowerUp(s.cfg, s.rng))
	}
}

// moveObstacles scrolls obstacles, resolves collisions up to the first hit,
// then scores the ones that left the playfield.
func (s *Session) moveObstacles(f float64) {
	d := s.progress.Difficulty
	for i := range s.ents.Obstacles {
		ob := &s.ents.Obstacles[i]
		ob.X -= ob.Speed * d * f
	}

	invisible := s.invisibility > 0
	for i := range s.ents.Obstacles {
		outcome := Resolve(&s.player, &s.ents.Obstacles[i], invisible)
		if outcome == OutcomeDodged {
			s.progress.dodge()
		}
		if outcome == OutcomeHit {
			s.damage(i)
			break
		}
	}
	if !s.active {
		return
	}

	s.ents.Obstacles = compact(s.ents.Obstacles, func(ob *Obstacle) bool {
		if ob.X+ob.W >= 0 {
			return true
		}
		s.passed(*ob)
		return false
	})
}

// passed scores an obstacle that fully left the playfield.
func (s *Session) passed(ob Obstacle) {
	s.progress.pass(s.cfg.Timing.ComboWindow)
	if text := ComboText(s.progress.Combo); text != "" {
		s.comboText.show(text, s.cfg.Timing.ComboText)
	}

	cx, cy := ob.Box().Center()
	s.ents.Particles = s.emit.Emit(s.ents.Particles, dodgeSparks(ob.Kind, cx, cy))

	if s.invisibility > 0 {
		s.invisibility--
		if s.invisibility == 0 {
			s.notify(noticeInvisEnded)
		}
	}
}

// damage applies an unabsorbed hit from obstacle i.
func (s *Session) damage(i int) {
	if s.player.Lives > 1 {
		s.player.Lives--
		s.player.Grace = s.cfg.Timing.Grace
		s.progress.breakStreak()
		s.notify(noticeLifeLost)
		s.ents.Obstacles = slices.Delete(s.ents.Obstacles, i, i+1)
		return
	}

	s.player.Lives = 0
	cx, cy := s.player.Center()
	s.ents.Particles = s.emit.Emit(s.ents.Particles, explosion(cx, cy))
	s.active = false
	s.crashed = true
}

func (s *Session) movePowerUps(f float64) {
	d := s.progress.Difficulty
	for i := range s.ents.PowerUps {
		pu := &s.ents.PowerUps[i]
		pu.X -= pu.Speed * d * f
	}

	for i := range s.ents.PowerUps {
		if Collects(&s.player, &s.ents.PowerUps[i]) {
			pu := s.ents.PowerUps[i]
			s.ents.PowerUps = slices.Delete(s.ents.PowerUps, i, i+1)
			s.collect(pu)
			break
		}
	}

	s.ents.PowerUps = compact(s.ents.PowerUps, func(pu *PowerUp) bool {
		return pu.X+pu.W >= 0
	})
}

// collect applies a power-up effect.
func (s *Session) collect(pu PowerUp) {
	switch pu.Kind {
	case PowerUpExtraLife:
		s.player.Lives++
		s.notify(noticeExtraLife)
	case PowerUpInvisibility:
		s.invisibility = s.cfg.PowerUps.InvisibilityCharges
		s.notify(fmt.Sprintf(noticeInvisibility, s.invisibility))
	case PowerUpFly:
		s.player.fly(s.cfg)
		s.notify(fmt.Sprintf(noticeFly, int(s.cfg.Timing.FlyDuration/time.Second)))
	}

	cx, cy := pu.Box().Center()
	s.ents.Particles = s.emit.Emit(s.ents.Particles, powerUpBurst(pu.Kind, cx, cy))
}

func (s *Session) updateBackground(f float64) {
	d := s.progress.Difficulty
	for i := range s.ents.Buildings {
		b := &s.ents.Buildings[i]
		b.X -= b.Speed * d * f
		if b.X+b.W < 0 {
			b.X = s.cfg.Playfield.Width
			b.H = 100 + s.rng.Float64()*150
			for j := range b.Windows {
				b.Windows[j].DY = 10 + s.rng.Float64()*(b.H-20)
				b.Windows[j].Lit = s.rng.Float64() > 0.5
			}
		}
	}

	if d > s.cfg.Effects.SpeedLineThreshold && s.rng.Float64() < s.cfg.Effects.SpeedLineChance {
		s.ents.SpeedLines = append(s.ents.SpeedLines, newSpeedLine(s.cfg.Playfield.Width, s.cfg.Playfield.Height, s.rng))
	}
	for i := range s.ents.SpeedLines {
		s.ents.SpeedLines[i].X -= s.ents.SpeedLines[i].Speed * d * f
	}
	s.ents.SpeedLines = compact(s.ents.SpeedLines, func(sl *SpeedLine) bool {
		return sl.X+sl.Length >= 0
	})
}

func (s *Session) emitAura() {
	n := AuraIntensity(s.progress.PowerLevel, s.cfg.Effects.AuraThreshold)
	if n == 0 {
		return
	}
	cx, cy := s.player.Center()
	s.ents.Aura = s.emit.Aura(s.ents.Aura, cx, cy, n, stageColor(s.progress.PowerStage))
}

func (s *Session) notify(text string) {
	s.notice.show(text, s.cfg.Timing.Notification)
}
