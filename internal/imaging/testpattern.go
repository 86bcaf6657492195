// internal/imaging/testpattern.go
package imaging

import (
	"image"
	"image/color"
)

// TestPattern returns the cyan-over-yellow split image used to exercise the
// pipeline without a source photo. The two halves have distinct luma (178
// and 225), so stage output is easy to eyeball.
func TestPattern(width, height int) *image.RGBA {
	cyan := color.RGBA{0, 255, 255, 255}
	yellow := color.RGBA{255, 255, 0, 255}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		c := cyan
		if y >= height/2 {
			c = yellow
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SavePattern writes a test pattern PNG.
func SavePattern(width, height int, path string) error {
	return writePNG(TestPattern(width, height), path)
}
