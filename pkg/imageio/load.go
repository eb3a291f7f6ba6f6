package imageio

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	"os"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// ImageData contains a loaded image as a pixel buffer
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// Load reads any supported format (PPM, PNG, BMP, TIFF or JPEG) into [0, 1]
// pixels, top row first
func Load(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image file")
	}
	defer file.Close()

	if format, err := FormatFromPath(filename); err == nil && format == FormatPPM {
		pixels, width, height, err := ReadPPM(file)
		if err != nil {
			return nil, err
		}
		return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
	}

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	pixels, width, height := FromImage(img)
	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}
