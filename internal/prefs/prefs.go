// Package prefs persists the two user preferences, theme and language, in a
// small KEY=value file.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Language string

const (
	LangTR Language = "tr"
	LangEN Language = "en"
)

const (
	keyTheme    = "theme"
	keyLanguage = "language"
)

// Prefs are the persisted user choices.
type Prefs struct {
	Theme    Theme
	Language Language
}

// Default returns dark theme and Turkish.
func Default() Prefs {
	return Prefs{Theme: ThemeDark, Language: LangTR}
}

// ToggleTheme switches between dark and light.
func (p *Prefs) ToggleTheme() {
	if p.Theme == ThemeDark {
		p.Theme = ThemeLight
	} else {
		p.Theme = ThemeDark
	}
}

// ToggleLanguage switches between Turkish and English.
func (p *Prefs) ToggleLanguage() {
	if p.Language == LangTR {
		p.Language = LangEN
	} else {
		p.Language = LangTR
	}
}

// Store reads and writes Prefs at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store uses.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored preferences. A missing file yields the defaults;
// unknown values fall back to the default for that key.
func (s *Store) Load() (Prefs, error) {
	p := Default()

	values, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("read prefs %s: %w", s.path, err)
	}

	switch Theme(values[keyTheme]) {
	case ThemeDark, ThemeLight:
		p.Theme = Theme(values[keyTheme])
	}
	switch Language(values[keyLanguage]) {
	case LangTR, LangEN:
		p.Language = Language(values[keyLanguage])
	}
	return p, nil
}

// Save writes p, replacing the previous file.
func (s *Store) Save(p Prefs) error {
	values := map[string]string{
		keyTheme:    string(p.Theme),
		keyLanguage: string(p.Language),
	}
	if err := godotenv.Write(values, s.path); err != nil {
		return fmt.Errorf("write prefs %s: %w", s.path, err)
	}
	return nil
}
