package runner

// Outcome is the result of testing one obstacle against the player.
type Outcome uint8

const (
	OutcomeClear    Outcome = iota // No overlap
	OutcomeDodged                  // Overlap avoided by posture, first time for this obstacle
	OutcomeAbsorbed                // Overlap ignored: repeat dodge, grace, invisibility or flight
	OutcomeHit                     // Damage
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClear:
		return "clear"
	case OutcomeDodged:
		return "dodged"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// dodgesByPosture reports whether the posture avoids the obstacle kind.
func dodgesByPosture(kind ObstacleKind, posture Posture) bool {
	switch kind {
	case ObstacleLaser:
		return posture == PostureJumping
	case ObstacleBullet:
		return posture == PostureSliding
	default:
		return false
	}
}

// Resolve tests an obstacle against the player. The dodged flag on the
// obstacle is set on the first posture dodge so streaks count it once.
func Resolve(p *Player, ob *Obstacle, invisible bool) Outcome {
	if !p.Box().Intersects(ob.Box()) {
		return OutcomeClear
	}
	if dodgesByPosture(ob.Kind, p.Posture) {
		if ob.dodged {
			return OutcomeAbsorbed
		}
		ob.dodged = true
		return OutcomeDodged
	}
	if p.Grace > 0 || invisible || p.Posture == PostureFlying {
		return OutcomeAbsorbed
	}
	return OutcomeHit
}

// Collects reports whether the player picks up the power-up.
func Collects(p *Player, pu *PowerUp) bool {
	return p.Box().Intersects(pu.Box())
}
