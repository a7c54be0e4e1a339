package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/matrix-runner/internal/core"
	"github.com/vovakirdan/matrix-runner/internal/games/runner"
)

// Glyphs
const (
	GroundChar    = '═'
	PlayerChar    = '█'
	GhostChar     = '▒' // player while blinking or invisible
	LaserChar     = '≡'
	BulletChar    = '●'
	ExtraLifeChar = '♥'
	InvisChar     = '◌'
	FlyChar       = '▲'
	SparkChar     = '*'
	EmberChar     = '·'
	BuildingChar  = '▓'
	WindowChar    = '▪'
	StreakChar    = '─'
)

// Minimum terminal size that can show the playfield.
const (
	minScreenW = 40
	minScreenH = 12
)

// projector maps playfield coordinates to screen cells. Row 0 is the HUD.
type projector struct {
	sx, sy float64
	top    int
}

func newProjector(snap runner.Snapshot, w, h int) projector {
	p := projector{top: 1, sx: 1, sy: 1}
	if snap.Width > 0 {
		p.sx = float64(w) / snap.Width
	}
	if snap.Height > 0 {
		p.sy = float64(h-p.top) / snap.Height
	}
	return p
}

func (p projector) x(v float64) int { return int(math.Floor(v * p.sx)) }

func (p projector) y(v float64) int { return p.top + int(math.Floor(v*p.sy)) }

// rect projects a box, never shrinking it below one cell.
func (p projector) rect(x, y, w, h float64) core.Rect {
	x0, y0 := p.x(x), p.y(y)
	x1 := max(x0+1, int(math.Round((x+w)*p.sx)))
	y1 := max(y0+1, p.top+int(math.Round((y+h)*p.sy)))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// DrawSnapshot renders a frame into dst. It reads the snapshot only.
func DrawSnapshot(dst *core.Screen, snap runner.Snapshot) {
	dst.Clear()
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorNeon)
		return
	}

	p := newProjector(snap, dst.Width(), dst.Height())
	drawSkyline(dst, p, snap)

	for _, l := range snap.SpeedLines {
		r := p.rect(l.X, l.Y, l.Length, 1)
		dst.DrawHLine(r.X, r.Y, r.W, StreakChar, core.ColorGray)
	}

	dst.DrawHLine(0, p.y(snap.GroundY), dst.Width(), GroundChar, core.ColorMatrix)

	for _, pu := range snap.PowerUps {
		dst.DrawRect(p.rect(pu.X, pu.Y, pu.W, pu.H), powerUpGlyph(pu.Kind), pu.Color)
	}
	for _, ob := range snap.Obstacles {
		dst.DrawRect(p.rect(ob.X, ob.Y, ob.W, ob.H), obstacleGlyph(ob.Kind), ob.Color)
	}

	drawPlayer(dst, p, snap.Player)

	for _, pt := range snap.Particles {
		g := SparkChar
		if pt.Alpha < 0.5 {
			g = EmberChar
		}
		dst.SetCell(p.x(pt.X), p.y(pt.Y), g, pt.Color)
	}

	drawHUD(dst, snap)
}

func drawSkyline(dst *core.Screen, p projector, snap runner.Snapshot) {
	for _, b := range snap.Buildings {
		top := snap.GroundY - b.H
		dst.DrawRect(p.rect(b.X, top, b.W, b.H), BuildingChar, b.Shade)
		for _, w := range b.Windows {
			if w.Lit {
				dst.SetCell(p.x(b.X+w.DX), p.y(top+w.DY), WindowChar, core.ColorSpark)
			}
		}
	}
}

func drawPlayer(dst *core.Screen, p projector, pv runner.PlayerView) {
	g := PlayerChar
	if pv.Alpha < 1 {
		g = GhostChar
	}
	dst.DrawRect(p.rect(pv.X, pv.Y, pv.W, pv.H), g, pv.Color)
}

func drawHUD(dst *core.Screen, snap runner.Snapshot) {
	left := fmt.Sprintf(" Score: %d  High: %d  Lives: %d  Power: %d%% ",
		snap.Score, snap.HighScore, snap.Lives, snap.PowerLevel)
	dst.DrawTextColor(0, 0, left, core.ColorMatrix)

	var right []string
	if snap.Invisibility > 0 {
		right = append(right, fmt.Sprintf("Invisible: %d", snap.Invisibility))
	}
	if snap.FlyTimer != "" {
		right = append(right, snap.FlyTimer)
	}
	right = append(right, fmt.Sprintf("Spd: %.1fx ", snap.Difficulty))
	text := strings.Join(right, "  ")
	dst.DrawTextColor(dst.Width()-len([]rune(text)), 0, text, core.ColorSky)

	if snap.Notification != "" {
		dst.DrawTextCentered(2, snap.Notification, core.ColorSpark)
	}
	if snap.ComboText != "" {
		dst.DrawTextCentered(3, snap.ComboText, core.ColorGold)
	}
}

// drawMessageBox draws a bordered box with centered lines in the middle of dst.
func drawMessageBox(dst *core.Screen, c core.Color, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW := min(w+4, dst.Width())
	boxH := min(len(lines)+2, dst.Height())
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColor(x, boxY+1+i, l, c)
	}
}

func obstacleGlyph(kind runner.ObstacleKind) rune {
	switch kind {
	case runner.ObstacleBullet:
		return BulletChar
	default:
		return LaserChar
	}
}

func powerUpGlyph(kind runner.PowerUpKind) rune {
	switch kind {
	case runner.PowerUpExtraLife:
		return ExtraLifeChar
	case runner.PowerUpInvisibility:
		return InvisChar
	default:
		return FlyChar
	}
}
