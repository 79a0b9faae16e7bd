package particles

import (
	"image/color"
	"math"
)

// Surface is the drawing target a Field renders into. Coordinates are in
// surface pixels; colors are non-premultiplied.
type Surface interface {
	Clear()
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
}

// FrameSource calls the registered function once per display refresh until
// the returned cancel func is called.
type FrameSource interface {
	Register(fn func(Surface)) (cancel func())
}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
