package prefs

import "github.com/lucasb-eyer/go-colorful"

var (
	darkBackground  = colorful.MustParseHex("#0f172a")
	lightBackground = colorful.MustParseHex("#f8fafc")
)

// Background is the page color behind the particles for the theme.
func (t Theme) Background() colorful.Color {
	if t == ThemeLight {
		return lightBackground
	}
	return darkBackground
}
