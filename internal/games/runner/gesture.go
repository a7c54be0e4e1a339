package runner

import "time"

// TapDetector turns raw taps into gestures. A first tap is held back for the
// double-tap gap; a second tap inside the gap yields a double-tap, otherwise
// the held tap resolves to a single tap once the gap has elapsed.
type TapDetector struct {
	gap     time.Duration
	first   time.Duration
	pending bool
}

// NewTapDetector creates a detector with the given double-tap gap.
func NewTapDetector(gap time.Duration) TapDetector {
	return TapDetector{gap: gap}
}

// Press registers a tap at the given timestamp.
func (d *TapDetector) Press(at time.Duration) (Gesture, bool) {
	if !d.pending {
		d.first = at
		d.pending = true
		return 0, false
	}
	if at-d.first < d.gap {
		d.pending = false
		return GestureDoubleTap, true
	}
	// The held tap expired without a poll: it was a jump, and this one starts a new window.
	d.first = at
	return GestureTap, true
}

// Poll resolves a held tap whose window has closed.
func (d *TapDetector) Poll(now time.Duration) (Gesture, bool) {
	if d.pending && now-d.first >= d.gap {
		d.pending = false
		return GestureTap, true
	}
	return 0, false
}

// Pending reports whether a tap is waiting for its window to close.
func (d *TapDetector) Pending() bool {
	return d.pending
}

// Reset drops any held tap.
func (d *TapDetector) Reset() {
	d.pending = false
	d.first = 0
}
