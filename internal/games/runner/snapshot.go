package runner

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/matrix-runner/internal/core"
)

// Snapshot is an immutable view of a frame for presentation.
// It shares no memory with the session it was taken from.
type Snapshot struct {
	Phase Phase  `msgpack:"phase"`
	Frame uint64 `msgpack:"frame"`

	Width   float64 `msgpack:"w"`
	Height  float64 `msgpack:"h"`
	GroundY float64 `msgpack:"ground"`

	Score        int     `msgpack:"score"`
	HighScore    int     `msgpack:"high"`
	Lives        int     `msgpack:"lives"`
	Combo        int     `msgpack:"combo"`
	Dodges       int     `msgpack:"dodges"`
	Difficulty   float64 `msgpack:"difficulty"`
	PowerLevel   int     `msgpack:"power"`
	PowerStage   int     `msgpack:"stage"`
	Invisibility int     `msgpack:"invis"`

	Notification    string `msgpack:"notice,omitempty"`
	ComboText       string `msgpack:"combo_text,omitempty"`
	FlyTimer        string `msgpack:"fly,omitempty"`
	GameOverMessage string `msgpack:"game_over,omitempty"`

	Player     PlayerView      `msgpack:"player"`
	Obstacles  []ObstacleView  `msgpack:"obstacles"`
	PowerUps   []PowerUpView   `msgpack:"powerups"`
	Particles  []ParticleView  `msgpack:"particles"`
	Buildings  []BuildingView  `msgpack:"buildings"`
	SpeedLines []SpeedLineView `msgpack:"lines"`
}

// Active reports whether the session is still advancing.
func (s Snapshot) Active() bool {
	return s.Phase == PhaseRunning
}

// PlayerView is the drawable player.
type PlayerView struct {
	Posture Posture    `msgpack:"posture"`
	X       float64    `msgpack:"x"`
	Y       float64    `msgpack:"y"`
	W       float64    `msgpack:"w"`
	H       float64    `msgpack:"h"`
	Color   core.Color `msgpack:"color"`
	Alpha   float64    `msgpack:"alpha"` // 1 opaque, lower while invulnerable
}

// ObstacleView is a drawable obstacle.
type ObstacleView struct {
	Kind  ObstacleKind `msgpack:"kind"`
	X     float64      `msgpack:"x"`
	Y     float64      `msgpack:"y"`
	W     float64      `msgpack:"w"`
	H     float64      `msgpack:"h"`
	Color core.Color   `msgpack:"color"`
}

// PowerUpView is a drawable power-up.
type PowerUpView struct {
	Kind  PowerUpKind `msgpack:"kind"`
	X     float64     `msgpack:"x"`
	Y     float64     `msgpack:"y"`
	W     float64     `msgpack:"w"`
	H     float64     `msgpack:"h"`
	Color core.Color  `msgpack:"color"`
}

// ParticleView is a drawable particle; Alpha fades with remaining life.
type ParticleView struct {
	X      float64    `msgpack:"x"`
	Y      float64    `msgpack:"y"`
	Radius float64    `msgpack:"r"`
	Color  core.Color `msgpack:"color"`
	Alpha  float64    `msgpack:"a"`
}

// BuildingView is a drawable skyline block.
type BuildingView struct {
	X       float64    `msgpack:"x"`
	W       float64    `msgpack:"w"`
	H       float64    `msgpack:"h"`
	Shade   core.Color `msgpack:"shade"`
	Windows []Window   `msgpack:"windows"`
}

// SpeedLineView is a drawable streak.
type SpeedLineView struct {
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Length float64 `msgpack:"len"`
}

// particleFadeFrames is the life at which a particle is drawn fully opaque.
const particleFadeFrames = 70

// snapshot copies the session into a view.
func (s *Session) snapshot() Snapshot {
	cfg := s.cfg
	pr := s.progress
	snap := Snapshot{
		Frame:        s.frame,
		Width:        cfg.Playfield.Width,
		Height:       cfg.Playfield.Height,
		GroundY:      cfg.Playfield.GroundY(),
		Score:        pr.Score,
		Lives:        s.player.Lives,
		Combo:        pr.Combo,
		Dodges:       pr.Dodges,
		Difficulty:   pr.Difficulty,
		PowerLevel:   pr.PowerLevel,
		PowerStage:   pr.PowerStage,
		Invisibility: s.invisibility,
		Notification: s.notice.text,
		ComboText:    s.comboText.text,
		Player:       s.playerView(),
	}

	if s.player.Posture == PostureFlying && s.player.Fly > 0 {
		secs := int(math.Ceil(float64(s.player.Fly) / float64(time.Second)))
		snap.FlyTimer = fmt.Sprintf("Fly: %ds", secs)
	}

	snap.Obstacles = make([]ObstacleView, len(s.ents.Obstacles))
	for i, ob := range s.ents.Obstacles {
		snap.Obstacles[i] = ObstacleView{Kind: ob.Kind, X: ob.X, Y: ob.Y, W: ob.W, H: ob.H, Color: obstacleColor(ob.Kind)}
	}

	snap.PowerUps = make([]PowerUpView, len(s.ents.PowerUps))
	for i, pu := range s.ents.PowerUps {
		snap.PowerUps[i] = PowerUpView{Kind: pu.Kind, X: pu.X, Y: pu.Y, W: pu.W, H: pu.H, Color: powerUpColor(pu.Kind)}
	}

	snap.Particles = make([]ParticleView, 0, len(s.ents.Particles)+len(s.ents.Aura))
	for _, list := range [][]Particle{s.ents.Particles, s.ents.Aura} {
		for _, p := range list {
			snap.Particles = append(snap.Particles, ParticleView{
				X:      p.X,
				Y:      p.Y,
				Radius: p.Radius,
				Color:  p.Color,
				Alpha:  min(1, p.Life/particleFadeFrames),
			})
		}
	}

	snap.Buildings = make([]BuildingView, len(s.ents.Buildings))
	for i, b := range s.ents.Buildings {
		snap.Buildings[i] = BuildingView{X: b.X, W: b.W, H: b.H, Shade: b.Shade, Windows: slices.Clone(b.Windows)}
	}

	snap.SpeedLines = make([]SpeedLineView, len(s.ents.SpeedLines))
	for i, sl := range s.ents.SpeedLines {
		snap.SpeedLines[i] = SpeedLineView{X: sl.X, Y: sl.Y, Length: sl.Length}
	}

	return snap
}

func (s *Session) playerView() PlayerView {
	p := s.player
	v := PlayerView{Posture: p.Posture, X: p.X, Y: p.Y, W: p.W, H: p.H, Alpha: 1}

	switch {
	case p.Posture == PostureFlying:
		v.Color = core.ColorGold
	case s.invisibility > 0:
		v.Color = core.ColorSky
	default:
		v.Color = stageColor(s.progress.PowerStage)
	}

	// Blink while grace is running.
	if p.Grace > 0 && (s.frame/5)%2 == 0 {
		v.Alpha = 0.5
	} else if s.invisibility > 0 {
		v.Alpha = 0.6
	}
	return v
}

// GameOverMessage returns the streak message shown on the game-over screen.
func GameOverMessage(dodges int) string {
	if dodges > 5 {
		return fmt.Sprintf("Awesome! %d consecutive dodges!", dodges)
	}
	return ""
}
