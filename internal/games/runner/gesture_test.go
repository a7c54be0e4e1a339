package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTapDetector(t *testing.T) {
	ms := time.Millisecond

	type step struct {
		press   bool // press when true, poll otherwise
		at      time.Duration
		gesture Gesture
		ok      bool
	}

	tests := []struct {
		name  string
		steps []step
	}{
		{
			name: "double tap inside the gap",
			steps: []step{
				{press: true, at: 100 * ms},
				{press: true, at: 300 * ms, gesture: GestureDoubleTap, ok: true},
				{at: 600 * ms},
			},
		},
		{
			name: "lone tap resolves after the gap",
			steps: []step{
				{press: true, at: 100 * ms},
				{at: 200 * ms},
				{at: 350 * ms, gesture: GestureTap, ok: true},
				{at: 400 * ms},
			},
		},
		{
			name: "second tap exactly at the gap is a new tap",
			steps: []step{
				{press: true, at: 0},
				{press: true, at: 250 * ms, gesture: GestureTap, ok: true},
				{at: 499 * ms},
				{at: 500 * ms, gesture: GestureTap, ok: true},
			},
		},
		{
			name: "three quick taps",
			steps: []step{
				{press: true, at: 0},
				{press: true, at: 100 * ms, gesture: GestureDoubleTap, ok: true},
				{press: true, at: 150 * ms},
				{at: 400 * ms, gesture: GestureTap, ok: true},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewTapDetector(250 * ms)
			for i, s := range tc.steps {
				var g Gesture
				var ok bool
				if s.press {
					g, ok = d.Press(s.at)
				} else {
					g, ok = d.Poll(s.at)
				}
				assert.Equal(t, s.ok, ok, "step %d", i)
				if s.ok {
					assert.Equal(t, s.gesture, g, "step %d", i)
				}
			}
		})
	}
}

func TestTapDetectorReset(t *testing.T) {
	d := NewTapDetector(250 * time.Millisecond)
	d.Press(0)
	assert.True(t, d.Pending())

	d.Reset()
	assert.False(t, d.Pending())
	_, ok := d.Poll(time.Second)
	assert.False(t, ok)
}
