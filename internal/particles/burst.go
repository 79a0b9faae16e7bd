package particles

import (
	"image/color"
	"time"
)

const (
	BurstLifetime = time.Second
	BurstRadius   = 5.0
	BurstRise     = 30.0
	BurstAlpha    = 0.5
)

// Burst is a short-lived dot spawned by a click.
type Burst struct {
	X, Y float64
	Born time.Time
}

// Bursts animates click bursts: each one rises, shrinks and fades out over
// BurstLifetime and is then dropped.
type Bursts struct {
	clock Clock
	color color.NRGBA
	items []Burst
}

// NewBursts creates an empty burst set drawn in c.
func NewBursts(clock Clock, c color.NRGBA) *Bursts {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Bursts{clock: clock, color: c}
}

// Spawn adds a burst centered at (x, y).
func (b *Bursts) Spawn(x, y float64) {
	b.items = append(b.items, Burst{X: x, Y: y, Born: b.clock.Now()})
}

// Len returns the number of live bursts.
func (b *Bursts) Len() int {
	return len(b.items)
}

// Step drops finished bursts.
func (b *Bursts) Step() {
	now := b.clock.Now()
	live := b.items[:0]
	for _, it := range b.items {
		if now.Sub(it.Born) < BurstLifetime {
			live = append(live, it)
		}
	}
	b.items = live
}

// Render draws every live burst. Unlike Field.Render it does not clear s.
func (b *Bursts) Render(s Surface) {
	now := b.clock.Now()
	for _, it := range b.items {
		dy, r, a, done := BurstFrame(now.Sub(it.Born))
		if done {
			continue
		}
		s.FillCircle(it.X, it.Y+dy, r, WithAlpha(b.color, a))
	}
}

// BurstFrame returns the vertical offset, radius and alpha of a burst of the
// given age, and whether it has finished.
func BurstFrame(age time.Duration) (dy, radius, alpha float64, done bool) {
	if age >= BurstLifetime {
		return -BurstRise, 0, 0, true
	}
	if age < 0 {
		age = 0
	}
	t := float64(age) / float64(BurstLifetime)
	p := easeOut(t)
	return -BurstRise * p, BurstRadius * (1 - p), BurstAlpha * (1 - p), false
}

func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
