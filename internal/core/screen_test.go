package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("size = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	for y := range s.Height() {
		if row := s.Row(y); row != strings.Repeat(" ", 40) {
			t.Fatalf("row %d not blank: %q", y, row)
		}
	}

	empty := NewScreen(-3, 2)
	if empty.Width() != 0 || empty.String() != "\n" {
		t.Errorf("negative width should give an empty screen, got %dx%d %q",
			empty.Width(), empty.Height(), empty.String())
	}
}

func TestScreenCellsClipSilently(t *testing.T) {
	s := NewScreen(10, 4)

	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 4}} {
		s.SetCell(p[0], p[1], '#', ColorNeon)
		if got := s.GetCell(p[0], p[1]); got != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], got)
		}
	}

	s.SetCell(3, 2, '█', ColorMatrix)
	if got := s.GetCell(3, 2); got.Rune != '█' || got.Color != ColorMatrix {
		t.Errorf("GetCell(3, 2) = %+v", got)
	}

	// Plain Set drops the colour.
	s.Set(3, 2, 'x')
	if got := s.GetCell(3, 2); got.Color != ColorDefault || s.Get(3, 2) != 'x' {
		t.Errorf("Set should store an uncolored rune, got %+v", got)
	}

	s.Clear()
	if s.Get(3, 2) != ' ' {
		t.Error("Clear left content behind")
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Screen)
		row  int
		want string
	}{
		{"plain", func(s *Screen) { s.DrawText(1, 0, "Score: 7") }, 0, " Score: 7 "},
		{"clipped", func(s *Screen) { s.DrawText(8, 0, "High") }, 0, "        Hi"},
		{"negative start", func(s *Screen) { s.DrawText(-2, 0, "xxab") }, 0, "ab        "},
		{"centered", func(s *Screen) { s.DrawTextCentered(1, "GAME", ColorNeon) }, 1, "   GAME   "},
		{"centered wide runes", func(s *Screen) { s.DrawTextCentered(1, "═══", ColorNeon) }, 1, "   ═══    "},
		{"hline", func(s *Screen) { s.DrawHLine(2, 2, 4, '─', ColorGray) }, 2, "  ────    "},
		{"hline negative length", func(s *Screen) { s.DrawHLine(2, 2, -4, '─', ColorGray) }, 2, "          "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 3)
			tt.draw(s)
			if got := s.Row(tt.row); got != tt.want {
				t.Errorf("row %d = %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestScreenRectAndBox(t *testing.T) {
	s := NewScreen(8, 5)
	s.DrawRect(NewRect(1, 1, 3, 2), '▓', ColorDarkGreen)
	s.DrawBox(NewRect(4, 0, 4, 4), ColorMatrix)

	want := []string{
		"    ┌──┐",
		" ▓▓▓│  │",
		" ▓▓▓│  │",
		"    └──┘",
		"        ",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
	if c := s.GetCell(2, 2).Color; c != ColorDarkGreen {
		t.Errorf("rect colour = %v", c)
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("String() = %q", got)
	}
	if got := s.Row(9); got != "        " {
		t.Errorf("out of range row = %q", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawTextColor(0, 0, "Hello", ColorMatrix)
	s.DrawText(0, 5, "World")

	s.Resize(3, 4)
	if s.Width() != 3 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 3x4", s.Width(), s.Height())
	}
	if got := s.String(); got != "Hel\n   \n   \n   " {
		t.Errorf("after shrink = %q", got)
	}
	if s.GetCell(2, 0).Color != ColorMatrix {
		t.Error("resize lost colours")
	}

	s.Resize(6, 2)
	if got := s.Row(0); got != "Hel   " {
		t.Errorf("after grow row 0 = %q", got)
	}

	// Same size is a no-op.
	s.Set(5, 1, 'z')
	s.Resize(6, 2)
	if s.Get(5, 1) != 'z' {
		t.Error("same-size resize cleared the screen")
	}
}
