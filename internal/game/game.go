// Package game hosts the particle field in an ebiten window.
package game

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/prefs"
)

// Game implements ebiten.Game and acts as the particle field's frame source:
// the registered frame callback runs once per Draw.
type Game struct {
	// simulation
	field  *particles.Field
	bursts *particles.Bursts
	frame  func(particles.Surface)

	// drawing
	layer         *ebiten.Image
	width, height int

	// preferences
	prefs prefs.Prefs
	store *prefs.Store

	// input
	pointer pointerTracker

	// status
	frames   *frameTap
	started  time.Time
	lastDraw time.Time
	message  string
	lastErr  error

	// snapshot
	snapshotRequested bool
	pendingShot       *image.RGBA
	choosePath        func() (string, error)
}

// New loads preferences from store and builds a running field sized to the
// configured window.
func New(cfg *config.Config, store *prefs.Store) (*Game, error) {
	p, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	opts := []particles.Option{particles.WithLogger(log.Default())}
	if cfg.Seed != 0 {
		opts = append(opts, particles.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	g := &Game{
		field:      particles.New(w, h, particles.Narrow(w), opts...),
		bursts:     particles.NewBursts(particles.SystemClock{}, particles.DefaultColor),
		width:      cfg.Width,
		height:     cfg.Height,
		prefs:      p,
		store:      store,
		frames:     newFrameTap(config.FrameRingSize),
		started:    time.Now(),
		choosePath: chooseSnapshotPath,
	}
	g.field.Start(g)
	return g, nil
}

// Register implements particles.FrameSource.
func (g *Game) Register(fn func(particles.Surface)) (cancel func()) {
	g.frame = fn
	return func() { g.frame = nil }
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.prefs.ToggleTheme()
		g.savePrefs(tr(g.prefs.Language, msgTheme, themeName(g.prefs.Language, g.prefs.Theme)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.prefs.ToggleLanguage()
		g.savePrefs(tr(g.prefs.Language, msgLanguage))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.snapshotRequested = true
	}

	mouseX, mouseY := ebiten.CursorPosition()
	switch g.pointer.update(mouseX, mouseY, g.width, g.height, ebiten.IsFocused()) {
	case pointerMove:
		g.field.SetPointer(float64(mouseX), float64(mouseY))
	case pointerLeave:
		g.field.ClearPointer()
	}

	if g.pointer.inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.bursts.Spawn(float64(mouseX), float64(mouseY))
	}
	g.bursts.Step()

	if g.pendingShot != nil {
		shot := g.pendingShot
		g.pendingShot = nil
		g.saveSnapshot(shot)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	if !g.lastDraw.IsZero() {
		g.frames.record(now.Sub(g.lastDraw))
	}
	g.lastDraw = now

	screen.Fill(themeBackground(g.prefs.Theme))

	g.ensureLayer()
	if g.frame != nil {
		g.frame(imageSurface{img: g.layer})
	}
	screen.DrawImage(g.layer, nil)
	g.bursts.Render(imageSurface{img: screen})

	if g.snapshotRequested {
		g.pendingShot = capture(screen)
		g.snapshotRequested = false
	}

	g.drawStatus(screen)
}

// Layout follows the window size so the field always covers it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}

// ensureLayer keeps the particle layer the same size as the screen. A new
// layer starts empty; the next frame repaints it.
func (g *Game) ensureLayer() {
	if g.layer != nil {
		b := g.layer.Bounds()
		if b.Dx() == g.width && b.Dy() == g.height {
			return
		}
		g.layer.Deallocate()
	}
	g.layer = ebiten.NewImage(g.width, g.height)
}

func (g *Game) togglePause() {
	if g.field.Running() {
		g.field.Stop()
		g.message = ""
		return
	}
	g.field.Start(g)
	g.message = tr(g.prefs.Language, msgRunning)
}

func (g *Game) savePrefs(msg string) {
	if err := g.store.Save(g.prefs); err != nil {
		log.Printf("game: %v", err)
		g.lastErr = err
		return
	}
	g.message = msg
}

func (g *Game) saveSnapshot(shot image.Image) {
	path, err := g.choosePath()
	if err != nil {
		if errors.Is(err, errSnapshotCanceled) {
			return
		}
		g.lastErr = err
		return
	}
	if err := writePNG(path, shot); err != nil {
		log.Printf("game: %v", err)
		g.lastErr = err
		return
	}
	log.Printf("game: snapshot written to %s", path)
	g.message = tr(g.prefs.Language, msgSaved, path)
	g.lastErr = nil
}

func (g *Game) statusLine() string {
	lang := g.prefs.Language
	status := fmt.Sprintf("%s | FPS %.0f | %s", tr(lang, msgHelp), g.frames.fps(), formatDuration(time.Since(g.started)))
	if !g.field.Running() {
		status += " | " + tr(lang, msgPaused)
	}
	if g.message != "" {
		status += " | " + g.message
	}
	if g.lastErr != nil {
		status += " | " + tr(lang, msgError, g.lastErr)
	}
	return status
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := g.statusLine()
	// debug font is 6px wide
	w := float32(len([]rune(status))*6 + 8)
	vector.DrawFilledRect(screen, config.StatusX-4, config.StatusY-2, w, 20, statusBackdrop(g.prefs.Theme), false)
	ebitenutil.DebugPrintAt(screen, status, config.StatusX, config.StatusY)
}

// Field exposes the simulated field.
func (g *Game) Field() *particles.Field {
	return g.field
}

var _ ebiten.Game = (*Game)(nil)
var _ particles.FrameSource = (*Game)(nil)
