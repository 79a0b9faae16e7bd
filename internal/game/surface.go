package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// imageSurface draws particles onto an ebiten image.
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) Clear() {
	s.img.Clear()
}

func (s imageSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s imageSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
