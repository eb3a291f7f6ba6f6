package imageio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// WritePPM writes pixels as a plain-text (P3) PPM: a "P3\n<w> <h>\n255\n"
// header followed by one "r g b" line per pixel, top row first
func WritePPM(w io.Writer, pixels []core.Vec3, width, height int) error {
	if err := checkSize(pixels, width, height); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return errors.Wrap(err, "writing ppm header")
	}
	for _, p := range pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", Quantize(p.X), Quantize(p.Y), Quantize(p.Z)); err != nil {
			return errors.Wrap(err, "writing ppm pixel")
		}
	}
	return errors.Wrap(bw.Flush(), "flushing ppm")
}

// ReadPPM parses a plain-text (P3) PPM back into a pixel buffer in [0, 1]
func ReadPPM(r io.Reader) (pixels []core.Vec3, width, height int, err error) {
	br := bufio.NewReader(r)

	var magic string
	var maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, 0, 0, errors.Wrap(err, "reading ppm header")
	}
	if magic != "P3" {
		return nil, 0, 0, errors.Wrapf(ErrUnknownFormat, "ppm magic %q", magic)
	}
	if width <= 0 || height <= 0 || maxVal <= 0 {
		return nil, 0, 0, errors.Errorf("invalid ppm header %dx%d max %d", width, height, maxVal)
	}

	pixels = make([]core.Vec3, width*height)
	scale := 1 / float64(maxVal)
	for i := range pixels {
		var red, green, blue int
		if _, err := fmt.Fscan(br, &red, &green, &blue); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "reading ppm pixel %d", i)
		}
		pixels[i] = core.NewVec3(float64(red), float64(green), float64(blue)).Multiply(scale)
	}
	return pixels, width, height, nil
}
