package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/veripura/certscan/internal/common"
)

// Decode reads a PNG or JPEG raster. Corrupt or unsupported input is a
// terminal failure for the document; no partial result is produced.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, common.NewAppError("DECODE_ERROR", "cannot decode raster image",
			errors.Join(common.ErrInvalidInput, err))
	}
	switch format {
	case "png", "jpeg":
		return img, nil
	default:
		return nil, common.NewAppError("DECODE_ERROR", fmt.Sprintf("unsupported raster format %q", format), common.ErrUnsupported)
	}
}

// DecodeFile decodes a raster image from disk.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewAppError("DECODE_ERROR", "cannot open file", err)
	}
	defer f.Close()
	return Decode(f)
}
