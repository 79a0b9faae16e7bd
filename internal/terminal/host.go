package terminal

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/prefs"
)

// FrameInterval is the ticker period of the terminal frame source.
const FrameInterval = 16 * time.Millisecond // ~60 FPS

// Host drives a particle field from a ticker and tcell input events. All
// field calls happen on the goroutine running Run.
type Host struct {
	screen  tcell.Screen
	surface *Surface
	field   *particles.Field
	bursts  *particles.Bursts
	frame   func(particles.Surface)
	prefs   prefs.Prefs
	buttons tcell.ButtonMask
}

// NewHost sizes a field to an initialized screen and registers with it.
func NewHost(screen tcell.Screen, p prefs.Prefs, opts ...particles.Option) *Host {
	h := &Host{
		screen: screen,
		prefs:  p,
	}
	h.surface = NewSurface(screen, p.Theme.Background())

	w, ht := h.surface.PixelSize()
	h.field = particles.New(w, ht, particles.Narrow(w), opts...)
	h.bursts = particles.NewBursts(particles.SystemClock{}, particles.DefaultColor)
	h.field.Start(h)
	return h
}

// Register implements particles.FrameSource.
func (h *Host) Register(fn func(particles.Surface)) (cancel func()) {
	h.frame = fn
	return func() { h.frame = nil }
}

// Field exposes the simulated field.
func (h *Host) Field() *particles.Field {
	return h.field
}

// Prefs returns the preferences as changed by key presses.
func (h *Host) Prefs() prefs.Prefs {
	return h.prefs
}

// Run ticks the field until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	defer h.screen.DisableMouse()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-eventChan:
			if !h.handle(ev) {
				return
			}

		case <-ticker.C:
			h.drawFrame()
		}
	}
}

// drawFrame runs the registered frame callback, then bursts, then shows the
// screen. A paused field leaves the last frame in place.
func (h *Host) drawFrame() {
	if h.frame == nil {
		return
	}
	h.frame(h.surface)
	h.bursts.Step()
	h.bursts.Render(h.surface)
	h.screen.Show()
}

func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.handleMouse(x, y, ev.Buttons())
	case *tcell.EventFocus:
		if !ev.Focused {
			h.field.ClearPointer()
		}
	case *tcell.EventResize:
		h.handleResize()
	}
	return true
}

func (h *Host) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'p':
			if h.field.Running() {
				h.field.Stop()
			} else {
				h.field.Start(h)
			}
		case 't':
			h.prefs.ToggleTheme()
			h.surface.SetBackground(h.prefs.Theme.Background())
		}
	}
	return true
}

// handleMouse places the pointer at the center of the hovered cell and
// spawns a burst when the primary button goes down.
func (h *Host) handleMouse(x, y int, buttons tcell.ButtonMask) {
	px := (float64(x) + 0.5) * config.CellWidth
	py := (float64(y) + 0.5) * config.CellHeight
	h.field.SetPointer(px, py)
	pressed := buttons &^ h.buttons
	h.buttons = buttons
	if pressed&tcell.Button1 != 0 {
		h.bursts.Spawn(px, py)
	}
}

func (h *Host) handleResize() {
	h.screen.Sync()
	w, ht := h.surface.PixelSize()
	h.field.Resize(w, ht)
	log.Printf("terminal: resized to %.0fx%.0f", w, ht)
}
