package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/prefs"
)

var debug = flag.Bool("debug", false, "write logs to logs/particles.log")

func main() {
	flag.Parse()

	logFile, err := logging.Setup(*debug, "logs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fail(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	g, err := game.New(cfg, prefs.NewStore(cfg.PrefsPath))
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Printf("main: starting %dx%d", cfg.Width, cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// fail reports a fatal error on stderr and in a dialog, then exits.
func fail(err error) {
	log.Printf("main: %v", err)
	fmt.Fprintf(os.Stderr, "particles: %v\n", err)
	_ = zenity.Error(err.Error(), zenity.Title(config.DefaultTitle), zenity.ErrorIcon)
	os.Exit(1)
}
