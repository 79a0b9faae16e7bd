package game

import (
	"fmt"

	"github.com/iburimskiy/particle-field/internal/prefs"
)

type msgKey int

const (
	msgHelp msgKey = iota
	msgPaused
	msgRunning
	msgSaved
	msgError
	msgTheme
	msgLanguage
)

var messages = map[prefs.Language]map[msgKey]string{
	prefs.LangTR: {
		msgHelp:     "T: tema  L: dil  P: duraklat  S: kaydet  Tık: patlama  Esc: çıkış",
		msgPaused:   "Duraklatıldı",
		msgRunning:  "Çalışıyor",
		msgSaved:    "Kaydedildi: %s",
		msgError:    "Hata: %v",
		msgTheme:    "Tema: %s",
		msgLanguage: "Dil: Türkçe",
	},
	prefs.LangEN: {
		msgHelp:     "T: theme  L: language  P: pause  S: save  Click: burst  Esc: quit",
		msgPaused:   "Paused",
		msgRunning:  "Running",
		msgSaved:    "Saved: %s",
		msgError:    "Error: %v",
		msgTheme:    "Theme: %s",
		msgLanguage: "Language: English",
	},
}

var themeNames = map[prefs.Language]map[prefs.Theme]string{
	prefs.LangTR: {prefs.ThemeDark: "koyu", prefs.ThemeLight: "açık"},
	prefs.LangEN: {prefs.ThemeDark: "dark", prefs.ThemeLight: "light"},
}

// tr looks up key in lang, falling back to English, and formats args into it.
func tr(lang prefs.Language, key msgKey, args ...any) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[prefs.LangEN]
	}
	s := table[key]
	if len(args) == 0 {
		return s
	}
	return fmt.Sprintf(s, args...)
}

func themeName(lang prefs.Language, t prefs.Theme) string {
	if names, ok := themeNames[lang]; ok {
		return names[t]
	}
	return string(t)
}
