// Package particles simulates the drifting particle background: a fixed set of
// dots that fade in, wrap around the surface edges, get pushed away from the
// pointer and are joined by faint lines when close to each other.
//
// A Field has exactly one writer. Hosts call Tick (or Step and Render) from
// their frame callback and deliver pointer and resize events on the same
// goroutine.
package particles

import (
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// Particle counts by viewport class
	DesktopCount = 80
	NarrowCount  = 30

	// NarrowWidth is the widest viewport still treated as narrow
	NarrowWidth = 768

	MaxDepth         = 4.0
	MinRadius        = 0.5
	MaxRadius        = 2.5
	MaxSpeed         = 0.25
	MinTargetOpacity = 0.3
	MaxTargetOpacity = 0.8
	MaxFadeDelay     = 600 * time.Millisecond
	FadeStep         = 0.01

	// Pointer interaction
	PointerRadius = 100.0
	PointerForce  = 2.0
	PointerIdle   = 100 * time.Millisecond

	// Connections
	LinkDistance = 120.0
	LinkAlpha    = 0.15
	LinkWidth    = 1.0
	MaxLinks     = 3
)

// DefaultColor is the fixed hue of particles and links.
var DefaultColor = color.NRGBA{R: 99, G: 102, B: 241, A: 255}

// Narrow reports whether a viewport of the given width gets the reduced
// particle count.
func Narrow(width float64) bool {
	return width <= NarrowWidth
}

type pointer struct {
	x, y   float64
	moved  time.Time
	active bool
}

// Field owns the particles, the pointer state and the surface dimensions.
type Field struct {
	width, height float64
	particles     []Particle
	pointer       pointer

	clock  Clock
	rng    *rand.Rand
	color  color.NRGBA
	logger *log.Logger

	cancel func()
	frames uint64
}

// Option configures a Field at construction.
type Option func(*Field)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(f *Field) { f.clock = c }
}

// WithRand replaces the random source used to seed particles.
func WithRand(r *rand.Rand) Option {
	return func(f *Field) { f.rng = r }
}

// WithColor changes the particle and link hue. Alpha is ignored.
func WithColor(c color.NRGBA) Option {
	return func(f *Field) { f.color = c }
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(f *Field) { f.logger = l }
}

// New creates a field of width×height with 30 particles when narrow is set
// and 80 otherwise. The pointer starts absent.
func New(width, height float64, narrow bool, opts ...Option) *Field {
	f := &Field{
		width:  width,
		height: height,
		clock:  SystemClock{},
		color:  DefaultColor,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	count := DesktopCount
	if narrow {
		count = NarrowCount
	}

	now := f.clock.Now()
	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = newParticle(f.rng, now, width, height)
	}

	f.logger.Printf("particles: field %.0fx%.0f with %d particles", width, height, count)
	return f
}

// Size returns the current surface dimensions.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Resize changes the dimensions used for wraparound. Particles are kept as
// they are, including any now outside the new bounds until their next step.
func (f *Field) Resize(width, height float64) {
	if width == f.width && height == f.height {
		return
	}
	f.logger.Printf("particles: resize %.0fx%.0f -> %.0fx%.0f", f.width, f.height, width, height)
	f.width, f.height = width, height
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the particle state.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Frames returns the number of steps taken so far.
func (f *Field) Frames() uint64 {
	return f.frames
}

// SetPointer records a pointer movement. The pointer stays present until
// PointerIdle passes without another movement or ClearPointer is called.
func (f *Field) SetPointer(x, y float64) {
	f.pointer = pointer{x: x, y: y, moved: f.clock.Now(), active: true}
}

// ClearPointer marks the pointer absent, as when it leaves the surface.
func (f *Field) ClearPointer() {
	f.pointer.active = false
}

// Pointer returns the pointer position and whether it is present.
func (f *Field) Pointer() (x, y float64, ok bool) {
	if !f.pointerActive(f.clock.Now()) {
		return 0, 0, false
	}
	return f.pointer.x, f.pointer.y, true
}

func (f *Field) pointerActive(now time.Time) bool {
	return f.pointer.active && now.Sub(f.pointer.moved) < PointerIdle
}

// Repulsion returns the displacement a pointer at (px, py) applies to a
// particle at (x, y). It is zero outside radius.
func Repulsion(px, py, x, y, radius float64) (dx, dy float64) {
	ddx := x - px
	ddy := y - py
	dist := math.Sqrt(ddx*ddx + ddy*ddy)
	if dist >= radius {
		return 0, 0
	}
	force := (radius - dist) / radius
	angle := math.Atan2(ddy, ddx)
	return math.Cos(angle) * force * PointerForce, math.Sin(angle) * force * PointerForce
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	now := f.clock.Now()
	if f.pointer.active && !f.pointerActive(now) {
		f.pointer.active = false
	}

	for i := range f.particles {
		p := &f.particles[i]
		p.advance(now, f.width, f.height)

		if f.pointer.active {
			dx, dy := Repulsion(f.pointer.x, f.pointer.y, p.X, p.Y, PointerRadius)
			if dx != 0 || dy != 0 {
				p.X += dx
				p.Y += dy
				// the push can cross an edge; it is not carried into velocity
				p.wrap(f.width, f.height)
			}
		}
	}
	f.frames++
}

// Render clears s and draws the particles followed by their connections.
func (f *Field) Render(s Surface) {
	s.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		s.FillCircle(p.X, p.Y, p.Radius, WithAlpha(f.color, p.Opacity))
	}
	for _, c := range f.Connections() {
		a, b := f.particles[c.I], f.particles[c.J]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, LinkWidth, WithAlpha(f.color, c.Alpha))
	}
}

// Tick is one frame: Step then Render.
func (f *Field) Tick(s Surface) {
	f.Step()
	f.Render(s)
}

// Start registers Tick with src. Calling Start on a running field does
// nothing.
func (f *Field) Start(src FrameSource) {
	if f.cancel != nil {
		return
	}
	f.cancel = src.Register(f.Tick)
	f.logger.Printf("particles: started")
}

// Stop cancels the frame registration made by Start.
func (f *Field) Stop() {
	if f.cancel == nil {
		return
	}
	f.cancel()
	f.cancel = nil
	f.logger.Printf("particles: stopped after %d frames", f.frames)
}

// Running reports whether the field is registered with a frame source.
func (f *Field) Running() bool {
	return f.cancel != nil
}
