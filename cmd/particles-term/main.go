package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/logging"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/prefs"
	"github.com/iburimskiy/particle-field/internal/terminal"
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
		log.Printf("main: %v", err)
		fmt.Fprintf(os.Stderr, "particles-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := prefs.NewStore(cfg.PrefsPath)
	p, err := store.Load()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	opts := []particles.Option{particles.WithLogger(log.Default())}
	if cfg.Seed != 0 {
		opts = append(opts, particles.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}
	host := terminal.NewHost(screen, p, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host.Run(ctx)

	if host.Prefs() == p {
		return nil
	}
	return store.Save(host.Prefs())
}
