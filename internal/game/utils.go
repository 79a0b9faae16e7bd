package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/particle-field/internal/prefs"
)

// themeBackground returns the opaque clear color for a theme.
func themeBackground(t prefs.Theme) color.NRGBA {
	r, g, b := t.Background().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// statusBackdrop is a translucent panel behind the debug text, dark enough
// for the white font on either theme.
func statusBackdrop(t prefs.Theme) color.NRGBA {
	c := t.Background()
	if t == prefs.ThemeLight {
		// pull the light background most of the way to dark
		c = c.BlendLab(prefs.ThemeDark.Background(), 0.85)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 200}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
