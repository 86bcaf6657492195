// internal/imaging/save.go
package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// SaveGray reconstructs a width x height grayscale PNG from raw bytes. Short
// buffers are zero-padded rather than rejected (the device routinely drops
// trailing bytes); the padded byte count is returned so callers can warn.
func SaveGray(data []byte, width, height int, path string) (int, error) {
	expected := width * height
	data, padded := pad(data, expected)

	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, data[:expected])

	return padded, writePNG(img, path)
}

// SaveRGB is SaveGray for 3-byte/pixel RGB data.
func SaveRGB(data []byte, width, height int, path string) (int, error) {
	expected := width * height * 3
	data, padded := pad(data, expected)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4] = data[i*3]
		img.Pix[i*4+1] = data[i*3+1]
		img.Pix[i*4+2] = data[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}

	return padded, writePNG(img, path)
}

func pad(data []byte, expected int) ([]byte, int) {
	if len(data) >= expected {
		return data, 0
	}
	padded := expected - len(data)
	out := make([]byte, expected)
	copy(out, data)
	return out, padded
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imaging: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("imaging: encode %s: %w", path, err)
	}
	return f.Close()
}
