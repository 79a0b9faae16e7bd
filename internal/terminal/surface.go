// Package terminal runs the particle field inside a tcell screen. Surface
// pixels map onto character cells; particles become dots and links become
// slope characters blended toward the background color.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-field/internal/config"
)

// lineGain brightens links; at their true alpha most of them vanish into
// the background on a 256-color terminal.
const lineGain = 3.0

// cellTarget is the part of tcell.Screen the surface draws through.
type cellTarget interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Fill(r rune, style tcell.Style)
	Size() (width, height int)
}

type cell struct{ x, y int }

// Surface implements particles.Surface on a terminal screen.
type Surface struct {
	target   cellTarget
	bg       colorful.Color
	occupied map[cell]bool
}

func NewSurface(target cellTarget, bg colorful.Color) *Surface {
	return &Surface{
		target:   target,
		bg:       bg,
		occupied: make(map[cell]bool),
	}
}

// SetBackground changes the color cells are cleared to and blended against.
func (s *Surface) SetBackground(bg colorful.Color) {
	s.bg = bg
}

// PixelSize is the surface size in pixels for the current screen.
func (s *Surface) PixelSize() (width, height float64) {
	w, h := s.target.Size()
	return float64(w * config.CellWidth), float64(h * config.CellHeight)
}

func (s *Surface) Clear() {
	s.target.Fill(' ', tcell.StyleDefault.Background(toTcell(s.bg)))
	clear(s.occupied)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	at, ok := s.cellAt(cx, cy)
	if !ok || c.A == 0 {
		return
	}
	s.target.SetContent(at.x, at.y, dotGlyph(r), nil, s.style(c, 1))
	s.occupied[at] = true
}

func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	glyph := slopeGlyph(x2-x1, y2-y1)
	style := s.style(c, lineGain)

	c1x, c1y := int(math.Floor(x1/config.CellWidth)), int(math.Floor(y1/config.CellHeight))
	c2x, c2y := int(math.Floor(x2/config.CellWidth)), int(math.Floor(y2/config.CellHeight))
	steps := max(abs(c2x-c1x), abs(c2y-c1y))
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		at := cell{
			x: c1x + int(math.Round(t*float64(c2x-c1x))),
			y: c1y + int(math.Round(t*float64(c2y-c1y))),
		}
		if s.occupied[at] || !s.inBounds(at) {
			continue
		}
		s.target.SetContent(at.x, at.y, glyph, nil, style)
	}
}

func (s *Surface) cellAt(x, y float64) (cell, bool) {
	at := cell{
		x: int(math.Floor(x / config.CellWidth)),
		y: int(math.Floor(y / config.CellHeight)),
	}
	return at, s.inBounds(at)
}

func (s *Surface) inBounds(at cell) bool {
	w, h := s.target.Size()
	return at.x >= 0 && at.y >= 0 && at.x < w && at.y < h
}

func (s *Surface) style(c color.NRGBA, gain float64) tcell.Style {
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	alpha := math.Min(1, float64(c.A)/255*gain)
	return tcell.StyleDefault.
		Foreground(toTcell(s.bg.BlendRgb(fg, alpha))).
		Background(toTcell(s.bg))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func dotGlyph(r float64) rune {
	switch {
	case r < 1:
		return '·'
	case r < 2:
		return '•'
	default:
		return '●'
	}
}

// slopeGlyph picks a character for a segment with screen direction (dx, dy),
// y growing downward.
func slopeGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)*config.CellWidth/config.CellHeight
	switch {
	case ax > 2*ay:
		return '-'
	case ay > 2*ax:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
