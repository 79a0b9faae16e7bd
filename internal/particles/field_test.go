package particles

import (
	"image/color"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type circleCall struct {
	x, y, r float64
	c       color.NRGBA
}

type lineCall struct {
	x1, y1, x2, y2, w float64
	c                 color.NRGBA
}

// recordingSurface captures draw calls in order
type recordingSurface struct {
	clears  int
	circles []circleCall
	lines   []lineCall
	order   []string
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = nil
	s.lines = nil
	s.order = append(s.order, "clear")
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.circles = append(s.circles, circleCall{cx, cy, r, c})
	s.order = append(s.order, "circle")
}

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2, w float64, c color.NRGBA) {
	s.lines = append(s.lines, lineCall{x1, y1, x2, y2, w, c})
	s.order = append(s.order, "line")
}

func newTestField(t *testing.T, w, h float64, narrow bool) (*Field, *ManualClock) {
	t.Helper()
	clock := NewManualClock(testStart)
	f := New(w, h, narrow,
		WithClock(clock),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithLogger(log.New(io.Discard, "", 0)),
	)
	return f, clock
}

// place replaces the field's particles with still, fully faded-in dots
func place(f *Field, pts ...[2]float64) {
	f.particles = make([]Particle, len(pts))
	for i, pt := range pts {
		f.particles[i] = Particle{X: pt[0], Y: pt[1], Radius: 1, Opacity: 0.5, TargetOpacity: 0.5}
	}
}

func TestNewParticleCount(t *testing.T) {
	tests := []struct {
		name   string
		narrow bool
		want   int
	}{
		{"desktop", false, DesktopCount},
		{"narrow", true, NarrowCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestField(t, 800, 600, tt.narrow)
			if f.Len() != tt.want {
				t.Errorf("Expected %d particles, got %d", tt.want, f.Len())
			}
		})
	}
}

func TestNewParticleRanges(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)

	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Errorf("particle %d: position (%f,%f) outside surface", i, p.X, p.Y)
		}
		if p.Depth < 0 || p.Depth >= MaxDepth {
			t.Errorf("particle %d: depth %f out of range", i, p.Depth)
		}
		if p.Radius < MinRadius || p.Radius >= MaxRadius {
			t.Errorf("particle %d: radius %f out of range", i, p.Radius)
		}
		if math.Abs(p.VX) > MaxSpeed || math.Abs(p.VY) > MaxSpeed {
			t.Errorf("particle %d: velocity (%f,%f) out of range", i, p.VX, p.VY)
		}
		if p.TargetOpacity < MinTargetOpacity || p.TargetOpacity >= MaxTargetOpacity {
			t.Errorf("particle %d: target opacity %f out of range", i, p.TargetOpacity)
		}
		if p.Opacity != 0 || !p.FadingIn {
			t.Errorf("particle %d: expected opacity 0 and fading in, got %f/%v", i, p.Opacity, p.FadingIn)
		}
		delay := p.FadeStart.Sub(testStart)
		if delay < 0 || delay >= MaxFadeDelay {
			t.Errorf("particle %d: fade delay %v out of range", i, delay)
		}
	}
}

func TestNarrow(t *testing.T) {
	if !Narrow(768) || !Narrow(320) {
		t.Error("Expected widths up to 768 to be narrow")
	}
	if Narrow(769) || Narrow(1920) {
		t.Error("Expected widths above 768 not to be narrow")
	}
}

func TestOpacityInvariants(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)

	prev := f.Particles()
	for frame := 0; frame < 300; frame++ {
		clock.Advance(16 * time.Millisecond)
		f.Step()

		for i, p := range f.Particles() {
			if p.Opacity < 0 || p.Opacity > p.TargetOpacity {
				t.Fatalf("frame %d particle %d: opacity %f outside [0,%f]", frame, i, p.Opacity, p.TargetOpacity)
			}
			if p.Opacity < prev[i].Opacity {
				t.Fatalf("frame %d particle %d: opacity decreased %f -> %f", frame, i, prev[i].Opacity, p.Opacity)
			}
			if p.FadingIn && !prev[i].FadingIn {
				t.Fatalf("frame %d particle %d: fadingIn became true again", frame, i)
			}
		}
		prev = f.Particles()
	}
}

func TestFadeWaitsForStartTime(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)
	f.particles[0].FadeStart = testStart.Add(200 * time.Millisecond)

	clock.Advance(200 * time.Millisecond)
	f.Step()
	if f.particles[0].Opacity != 0 {
		t.Errorf("Expected no fade at exactly the start time, got %f", f.particles[0].Opacity)
	}

	clock.Advance(time.Millisecond)
	f.Step()
	if math.Abs(f.particles[0].Opacity-FadeStep) > 1e-12 {
		t.Errorf("Expected opacity %f after first fade step, got %f", FadeStep, f.particles[0].Opacity)
	}
}

func TestFadeStepIsPerFrame(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)
	clock.Advance(time.Second)

	// a long gap between frames still adds a single step
	f.Step()
	for i, p := range f.Particles() {
		if math.Abs(p.Opacity-FadeStep) > 1e-12 {
			t.Errorf("particle %d: expected opacity %f, got %f", i, FadeStep, p.Opacity)
		}
	}
}

func TestWraparound(t *testing.T) {
	const w, h = 800.0, 600.0

	for _, eps := range []float64{0.001, 1, 100} {
		tests := []struct {
			name         string
			x, y         float64
			wantX, wantY float64
		}{
			{"right edge", w + eps, 300, 0, 300},
			{"left edge", -eps, 300, w, 300},
			{"bottom edge", 400, h + eps, 400, 0},
			{"top edge", 400, -eps, 400, h},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f, _ := newTestField(t, w, h, false)
				place(f, [2]float64{tt.x, tt.y})
				f.Step()

				p := f.particles[0]
				if p.X != tt.wantX || p.Y != tt.wantY {
					t.Errorf("eps=%v: expected (%v,%v), got (%v,%v)", eps, tt.wantX, tt.wantY, p.X, p.Y)
				}
			})
		}
	}
}

func TestWraparoundBothAxes(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f, [2]float64{799.9, -0.05})
	f.particles[0].VX = 0.2
	f.particles[0].VY = 0

	f.Step()
	p := f.particles[0]
	if p.X != 0 || p.Y != 600 {
		t.Errorf("Expected wrap on both axes to (0,600), got (%v,%v)", p.X, p.Y)
	}
}

func TestPositionStaysInBounds(t *testing.T) {
	f, clock := newTestField(t, 320, 240, true)

	for frame := 0; frame < 2000; frame++ {
		clock.Advance(16 * time.Millisecond)
		// sweep the pointer across the surface to exercise repulsion at the edges
		f.SetPointer(float64(frame%320), float64(frame%240))
		f.Step()
		for i, p := range f.particles {
			if p.X < 0 || p.X > 320 || p.Y < 0 || p.Y > 240 {
				t.Fatalf("frame %d particle %d: (%f,%f) out of bounds", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestRepulsionMagnitude(t *testing.T) {
	dx, dy := Repulsion(100, 100, 130, 140, PointerRadius)

	mag := math.Hypot(dx, dy)
	if math.Abs(mag-1.0) > 1e-9 {
		t.Errorf("Expected displacement magnitude 1.0 at distance 50, got %f", mag)
	}
	// direction follows pointer -> particle (0.6, 0.8)
	if math.Abs(dx-0.6) > 1e-9 || math.Abs(dy-0.8) > 1e-9 {
		t.Errorf("Expected displacement (0.6,0.8), got (%f,%f)", dx, dy)
	}
}

func TestRepulsionOutsideRadius(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"at radius", 100, 0},
		{"beyond radius", 250, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := Repulsion(0, 0, tt.x, tt.y, PointerRadius)
			if dx != 0 || dy != 0 {
				t.Errorf("Expected no displacement, got (%f,%f)", dx, dy)
			}
		})
	}
}

func TestPointerPushDoesNotPersist(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)
	place(f, [2]float64{400, 300})
	f.SetPointer(350, 300)

	f.Step()
	if math.Abs(f.particles[0].X-401) > 1e-9 || f.particles[0].Y != 300 {
		t.Fatalf("Expected push to (401,300), got (%f,%f)", f.particles[0].X, f.particles[0].Y)
	}
	if f.particles[0].VX != 0 || f.particles[0].VY != 0 {
		t.Errorf("Expected velocity untouched, got (%f,%f)", f.particles[0].VX, f.particles[0].VY)
	}

	f.ClearPointer()
	clock.Advance(16 * time.Millisecond)
	f.Step()
	if math.Abs(f.particles[0].X-401) > 1e-9 {
		t.Errorf("Expected particle to stay at 401 once the pointer is gone, got %f", f.particles[0].X)
	}
}

func TestPointerIdleTimeout(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)

	f.SetPointer(10, 20)
	if x, y, ok := f.Pointer(); !ok || x != 10 || y != 20 {
		t.Fatalf("Expected pointer at (10,20), got (%f,%f,%v)", x, y, ok)
	}

	clock.Advance(PointerIdle - time.Millisecond)
	if _, _, ok := f.Pointer(); !ok {
		t.Error("Expected pointer present just before idle timeout")
	}

	// new movement restarts the timer
	f.SetPointer(15, 25)
	clock.Advance(PointerIdle - time.Millisecond)
	f.Step()
	if _, _, ok := f.Pointer(); !ok {
		t.Error("Expected movement to restart the idle timer")
	}

	clock.Advance(time.Millisecond)
	f.Step()
	if _, _, ok := f.Pointer(); ok {
		t.Error("Expected pointer absent after idle timeout")
	}
}

func TestClearPointer(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f, [2]float64{400, 300})

	f.SetPointer(390, 300)
	f.ClearPointer()
	if _, _, ok := f.Pointer(); ok {
		t.Fatal("Expected pointer absent after ClearPointer")
	}

	f.Step()
	if f.particles[0].X != 400 {
		t.Errorf("Expected no repulsion with absent pointer, got x=%f", f.particles[0].X)
	}
}

func TestConnectionsFirstFoundCap(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f,
		[2]float64{0, 0},
		[2]float64{10, 0},
		[2]float64{20, 0},
		[2]float64{30, 0},
	)

	conns := f.Connections()
	from0 := 0
	for _, c := range conns {
		if c.I == 0 {
			from0++
		}
	}
	if from0 != MaxLinks {
		t.Errorf("Expected %d connections from particle 0, got %d", MaxLinks, from0)
	}

	// 0->1,2,3 then 1->2,3 then 2->3
	if len(conns) != 6 {
		t.Errorf("Expected 6 connections in total, got %d", len(conns))
	}

	received := make(map[int]int)
	for _, c := range conns {
		received[c.J]++
	}
	if received[3] != 3 {
		t.Errorf("Expected particle 3 to receive 3 connections, got %d", received[3])
	}
}

func TestConnectionsNotNearestFirst(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f,
		[2]float64{0, 0},
		[2]float64{100, 0},
		[2]float64{0, 100},
		[2]float64{80, 80},
		[2]float64{1, 1}, // nearest to particle 0 but found last
	)

	var targets []int
	for _, c := range f.Connections() {
		if c.I == 0 {
			targets = append(targets, c.J)
		}
	}
	want := []int{1, 2, 3}
	if len(targets) != len(want) {
		t.Fatalf("Expected targets %v, got %v", want, targets)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Fatalf("Expected targets %v, got %v", want, targets)
		}
	}
}

func TestConnectionAlpha(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f, [2]float64{0, 0}, [2]float64{60, 0}, [2]float64{500, 0}, [2]float64{500, 120})

	conns := f.Connections()
	if len(conns) != 1 {
		t.Fatalf("Expected 1 connection (exactly 120 apart is out of range), got %d", len(conns))
	}
	if math.Abs(conns[0].Alpha-0.075) > 1e-12 {
		t.Errorf("Expected alpha 0.075 at half distance, got %f", conns[0].Alpha)
	}
}

func TestRender(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	place(f, [2]float64{0, 0}, [2]float64{60, 0}, [2]float64{700, 500})

	s := &recordingSurface{}
	f.Render(s)

	if s.clears != 1 || s.order[0] != "clear" {
		t.Fatalf("Expected a single clear first, got %v", s.order)
	}
	if len(s.circles) != 3 {
		t.Fatalf("Expected 3 circles, got %d", len(s.circles))
	}
	if len(s.lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(s.lines))
	}
	if s.order[len(s.order)-1] != "line" {
		t.Errorf("Expected lines drawn after circles, got %v", s.order)
	}

	c := s.circles[0]
	want := WithAlpha(DefaultColor, 0.5)
	if c.c != want || c.r != 1 {
		t.Errorf("Expected circle r=1 color %v, got r=%f color %v", want, c.r, c.c)
	}
	if s.lines[0].w != LinkWidth {
		t.Errorf("Expected line width %f, got %f", LinkWidth, s.lines[0].w)
	}
}

func TestResizeKeepsParticles(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	before := f.Particles()

	f.Resize(400, 300)
	if w, h := f.Size(); w != 400 || h != 300 {
		t.Errorf("Expected size 400x300, got %fx%f", w, h)
	}
	if f.Len() != len(before) {
		t.Errorf("Expected particle count unchanged, got %d", f.Len())
	}
	for i, p := range f.Particles() {
		if p != before[i] {
			t.Fatalf("particle %d changed on resize", i)
		}
	}

	place(f, [2]float64{500, 100})
	f.Step()
	if f.particles[0].X != 0 {
		t.Errorf("Expected wrap against new width, got x=%f", f.particles[0].X)
	}
}

type fakeFrames struct {
	fn        func(Surface)
	cancelled int
}

func (s *fakeFrames) Register(fn func(Surface)) func() {
	s.fn = fn
	return func() {
		s.fn = nil
		s.cancelled++
	}
}

func (s *fakeFrames) frame(surf Surface) bool {
	if s.fn == nil {
		return false
	}
	s.fn(surf)
	return true
}

func TestStartStop(t *testing.T) {
	f, _ := newTestField(t, 800, 600, false)
	src := &fakeFrames{}
	surf := &recordingSurface{}

	f.Start(src)
	f.Start(src)
	if !f.Running() {
		t.Fatal("Expected field running after Start")
	}

	for i := 0; i < 5; i++ {
		if !src.frame(surf) {
			t.Fatal("Expected frame callback registered")
		}
	}
	if f.Frames() != 5 || surf.clears != 5 {
		t.Errorf("Expected 5 frames and clears, got %d/%d", f.Frames(), surf.clears)
	}

	f.Stop()
	f.Stop()
	if f.Running() || src.cancelled != 1 {
		t.Errorf("Expected one cancellation, got running=%v cancelled=%d", f.Running(), src.cancelled)
	}
	if src.frame(surf) {
		t.Error("Expected no frames after Stop")
	}
}

func TestFadeInConvergesEndToEnd(t *testing.T) {
	f, clock := newTestField(t, 800, 600, false)
	src := &fakeFrames{}
	surf := &recordingSurface{}

	if f.Len() != 80 {
		t.Fatalf("Expected 80 particles, got %d", f.Len())
	}
	for i, p := range f.Particles() {
		if p.Opacity != 0 {
			t.Fatalf("particle %d: expected initial opacity 0, got %f", i, p.Opacity)
		}
	}

	f.Start(src)
	// 600ms of delay plus at most 80 steps of ramp
	for i := 0; i < 200; i++ {
		clock.Advance(16 * time.Millisecond)
		src.frame(surf)
	}
	f.Stop()

	for i, p := range f.Particles() {
		if p.FadingIn {
			t.Errorf("particle %d: still fading in", i)
		}
		if p.Opacity != p.TargetOpacity {
			t.Errorf("particle %d: opacity %f, want %f", i, p.Opacity, p.TargetOpacity)
		}
	}
	if len(surf.circles) != 80 {
		t.Errorf("Expected 80 circles in the last frame, got %d", len(surf.circles))
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		a    float64
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := WithAlpha(DefaultColor, tt.a).A; got != tt.want {
			t.Errorf("WithAlpha(%v): expected %d, got %d", tt.a, tt.want, got)
		}
	}
}
