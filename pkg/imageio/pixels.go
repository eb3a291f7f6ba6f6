package imageio

import (
	"image"
	"image/color"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// Quantize maps a display value in [0, 1] to an 8-bit channel by truncating
// c*255.99. Out-of-range input is clamped first.
func Quantize(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	return uint8(min(c, 1) * 255.99)
}

// ToRGBA converts a top-row-first pixel buffer to an opaque RGBA image
func ToRGBA(pixels []core.Vec3, width, height int) (*image.RGBA, error) {
	if err := checkSize(pixels, width, height); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		img.SetRGBA(i%width, i/width, color.RGBA{
			R: Quantize(p.X),
			G: Quantize(p.Y),
			B: Quantize(p.Z),
			A: 255,
		})
	}
	return img, nil
}

// FromImage converts any decoded image back to a pixel buffer in [0, 1]
func FromImage(img image.Image) (pixels []core.Vec3, width, height int) {
	bounds := img.Bounds()
	width = bounds.Dx()
	height = bounds.Dy()
	pixels = make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return pixels, width, height
}
