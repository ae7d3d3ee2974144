package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// Flatten composites img over an opaque background.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, b, img, b.Min, draw.Over)
	return out
}

// Export flattens img over bg and writes it to dir/name.png, creating dir
// as needed. It returns the written path.
func Export(img image.Image, dir, name string, bg color.Color) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(f, Flatten(img, bg)); err != nil {
		closeErr := f.Close()
		if closeErr != nil {
			return "", fmt.Errorf("encoding %s: %w (also failed to close: %v)", path, err, closeErr)
		}
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
