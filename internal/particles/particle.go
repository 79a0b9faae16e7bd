package particles

import (
	"math/rand/v2"
	"time"
)

// Particle is one dot of the field. Position and opacity change every step;
// everything else is fixed at creation.
type Particle struct {
	X, Y   float64
	Depth  float64 // carried from creation, not used by rendering
	Radius float64
	VX, VY float64

	Opacity       float64
	TargetOpacity float64
	FadeStart     time.Time
	FadingIn      bool
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// newParticle draws every field independently. y is drawn a second time after
// the rest of the particle is built, and only the second draw is kept.
func newParticle(r *rand.Rand, now time.Time, width, height float64) Particle {
	p := Particle{
		X:             uniform(r, 0, width),
		Y:             uniform(r, 0, height),
		Depth:         uniform(r, 0, MaxDepth),
		Radius:        uniform(r, MinRadius, MaxRadius),
		VX:            uniform(r, -MaxSpeed, MaxSpeed),
		VY:            uniform(r, -MaxSpeed, MaxSpeed),
		Opacity:       0,
		TargetOpacity: uniform(r, MinTargetOpacity, MaxTargetOpacity),
	}
	p.Y = uniform(r, 0, height)
	delay := time.Duration(uniform(r, 0, float64(MaxFadeDelay)))
	p.FadeStart = now.Add(delay)
	p.FadingIn = true
	return p
}

// advance applies velocity, the fade-in ramp and wraparound.
func (p *Particle) advance(now time.Time, width, height float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.FadingIn && now.After(p.FadeStart) {
		p.Opacity += FadeStep
		if p.Opacity >= p.TargetOpacity {
			p.Opacity = p.TargetOpacity
			p.FadingIn = false
		}
	}

	p.wrap(width, height)
}

func (p *Particle) wrap(width, height float64) {
	p.X = wrap(p.X, width)
	p.Y = wrap(p.Y, height)
}

// wrap moves a coordinate that left [0, max] to the opposite edge.
func wrap(v, max float64) float64 {
	if v < 0 {
		return max
	}
	if v > max {
		return 0
	}
	return v
}
