package runner

// Posture is the player's current action. Exactly one is active at a time.
type Posture uint8

const (
	PostureRunning Posture = iota
	PostureJumping
	PostureSliding
	PostureFlying
)

func (p Posture) String() string {
	switch p {
	case PostureRunning:
		return "running"
	case PostureJumping:
		return "jumping"
	case PostureSliding:
		return "sliding"
	case PostureFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// ObstacleKind distinguishes low and high obstacles.
type ObstacleKind uint8

const (
	ObstacleLaser  ObstacleKind = iota // Low beam, jump over it
	ObstacleBullet                     // High projectile, slide under it
)

var obstacleKinds = [...]ObstacleKind{ObstacleLaser, ObstacleBullet}

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleLaser:
		return "laser"
	case ObstacleBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// PowerUpKind is the effect granted on pickup.
type PowerUpKind uint8

const (
	PowerUpExtraLife PowerUpKind = iota
	PowerUpInvisibility
	PowerUpFly
)

var powerUpKinds = [...]PowerUpKind{PowerUpExtraLife, PowerUpInvisibility, PowerUpFly}

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraLife:
		return "extra-life"
	case PowerUpInvisibility:
		return "invisibility"
	case PowerUpFly:
		return "fly"
	default:
		return "unknown"
	}
}

// Phase is the lifecycle state seen by front ends.
type Phase uint8

const (
	PhaseIdle     Phase = iota // No session, start screen
	PhaseRunning               // Simulation advancing
	PhaseCrashed               // Frozen, waiting for the game-over reveal
	PhaseGameOver              // Final score shown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCrashed:
		return "crashed"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Gesture is a resolved input intent.
type Gesture uint8

const (
	GestureTap       Gesture = iota // Jump
	GestureDoubleTap                // Slide
)

func (g Gesture) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureDoubleTap:
		return "double-tap"
	default:
		return "unknown"
	}
}
