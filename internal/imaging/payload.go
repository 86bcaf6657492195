// internal/imaging/payload.go
package imaging

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// LoadPayload reads an image file and flattens it into the raw row-major
// byte stream the device expects: 3 bytes/pixel RGB, or 1 byte/pixel luma
// when grayscale is set. Inputs of any size are resampled to width x height.
func LoadPayload(path string, width, height int, grayscale bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %s: %w", path, err)
	}
	return Flatten(img, width, height, grayscale), nil
}

// Flatten rasterizes img at width x height and packs it row-major.
func Flatten(img image.Image, width, height int, grayscale bool) []byte {
	rgba := rasterize(img, width, height)

	if grayscale {
		out := make([]byte, width*height)
		for i := 0; i < len(out); i++ {
			r := rgba.Pix[i*4]
			g := rgba.Pix[i*4+1]
			b := rgba.Pix[i*4+2]
			out[i] = luma(r, g, b)
		}
		return out
	}

	out := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		out[i*3] = rgba.Pix[i*4]
		out[i*3+1] = rgba.Pix[i*4+1]
		out[i*3+2] = rgba.Pix[i*4+2]
	}
	return out
}

// luma converts one RGB pixel to the single gray byte the pipeline's own
// grayscale stage produces. Truncation, not rounding, to match the hardware.
func luma(r, g, b uint8) uint8 {
	y := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if y > 255 {
		return 255
	}
	return uint8(y)
}

func rasterize(img image.Image, width, height int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if b.Dx() == width && b.Dy() == height {
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
		return dst
	}
	// High-quality resample, the counterpart of the LANCZOS filter the old
	// tooling used.
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
