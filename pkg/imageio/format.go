package imageio

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// ErrUnknownFormat is returned for file extensions or names with no encoder
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists the supported encodings
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}

// ParseFormat resolves a format name, case-insensitively. "tif" is an alias
// for tiff.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(name, "."))); f {
	case FormatPPM, FormatPNG, FormatBMP, FormatTIFF:
		return f, nil
	case "tif":
		return FormatTIFF, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPPM:
		return "image/x-portable-pixmap"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes pixels to w in the given format
func Encode(w io.Writer, format Format, pixels []core.Vec3, width, height int) error {
	if format == FormatPPM {
		return WritePPM(w, pixels, width, height)
	}

	img, err := ToRGBA(pixels, width, height)
	if err != nil {
		return err
	}

	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return errors.Wrapf(err, "encoding %s", format)
}

// Save writes pixels to path, creating parent directories and choosing the
// format from the extension
func Save(path string, pixels []core.Vec3, width, height int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating image file")
	}
	if err := Encode(file, format, pixels, width, height); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "closing image file")
}

func checkSize(pixels []core.Vec3, width, height int) error {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return errors.Errorf("buffer of %d pixels does not match %dx%d", len(pixels), width, height)
	}
	return nil
}
