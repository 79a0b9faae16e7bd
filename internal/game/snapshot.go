package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
)

// errSnapshotCanceled is returned by a path chooser when the user backs out.
var errSnapshotCanceled = errors.New("snapshot canceled")

// capture copies the pixels of img. Must be called from Draw.
func capture(img *ebiten.Image) *image.RGBA {
	b := img.Bounds()
	shot := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	img.ReadPixels(shot.Pix)
	return shot
}

// chooseSnapshotPath asks for a destination with a native save dialog.
func chooseSnapshotPath() (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("particles.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", errSnapshotCanceled
		}
		return "", err
	}
	return path, nil
}

// writePNG encodes img to path.
func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
