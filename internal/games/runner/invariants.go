package runner

import "fmt"

// checkInvariants runs after every Advance. Debug builds (tag runnerdebug)
// panic on a violation; release builds clamp the state and log a warning.
func (s *Session) checkInvariants() {
	p := &s.player

	if p.Lives < 0 {
		s.violation("lives below zero", "lives", p.Lives)
		p.Lives = 0
	}
	if p.Posture > PostureFlying {
		s.violation("unknown posture", "posture", uint8(p.Posture))
		p.land(s.cfg)
	}
	if p.Posture != PostureSliding && p.Slide > 0 {
		s.violation("slide timer outside slide", "posture", p.Posture)
		p.Slide = 0
	}
	if p.Posture != PostureFlying && p.Fly > 0 {
		s.violation("fly timer outside flight", "posture", p.Posture)
		p.Fly = 0
	}
	if s.crashed && p.Lives != 0 {
		s.violation("crashed with lives left", "lives", p.Lives)
		p.Lives = 0
	}
	if s.progress.Score < s.lastScore {
		s.violation("score decreased", "score", s.progress.Score, "previous", s.lastScore)
		s.progress.Score = s.lastScore
	}
	s.lastScore = s.progress.Score
}

func (s *Session) violation(check string, keyvals ...any) {
	if strictInvariants {
		panic(fmt.Sprintf("runner: invariant violated: %s %v", check, keyvals))
	}
	if s.log != nil {
		s.log.Warn("invariant violated, clamping", append([]any{"check", check}, keyvals...)...)
	}
}
