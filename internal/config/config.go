// Package config holds window constants and reads runtime settings from the
// environment. A .env file in the working directory is loaded first if present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	FrameRingSize = 120

	// Key help / status line
	StatusX = 12
	StatusY = 12

	// Terminal cell size in surface pixels
	CellWidth  = 8
	CellHeight = 16

	DefaultPrefsFile = ".particles-prefs"
	DefaultTitle     = "Particle Field"
)

// Config is the runtime configuration shared by both hosts.
type Config struct {
	Width     int
	Height    int
	Title     string
	PrefsPath string
	Seed      uint64 // 0 means seed from the clock
}

// Load builds a Config from PARTICLES_* environment variables.
func Load() (*Config, error) {
	// missing .env is fine
	_ = godotenv.Load()

	width, err := strconv.Atoi(getEnv("PARTICLES_WIDTH", strconv.Itoa(WindowWidth)))
	if err != nil {
		return nil, fmt.Errorf("invalid PARTICLES_WIDTH: %w", err)
	}
	height, err := strconv.Atoi(getEnv("PARTICLES_HEIGHT", strconv.Itoa(WindowHeight)))
	if err != nil {
		return nil, fmt.Errorf("invalid PARTICLES_HEIGHT: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", width, height)
	}

	seed, err := strconv.ParseUint(getEnv("PARTICLES_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PARTICLES_SEED: %w", err)
	}

	return &Config{
		Width:     width,
		Height:    height,
		Title:     getEnv("PARTICLES_TITLE", DefaultTitle),
		PrefsPath: getEnv("PARTICLES_PREFS", DefaultPrefsFile),
		Seed:      seed,
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
