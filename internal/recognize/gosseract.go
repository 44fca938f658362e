package recognize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Gosseract recognizes text with the in-process libtesseract binding.
// A fresh client is created per call: gosseract clients are not safe for
// concurrent use, and scans may run in parallel.
type Gosseract struct {
	TessdataDir string
	Logger      *slog.Logger
}

func NewGosseract(tessdataDir string, logger *slog.Logger) *Gosseract {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gosseract{TessdataDir: tessdataDir, Logger: logger}
}

func (g *Gosseract) Recognize(ctx context.Context, img image.Image, languages []string) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if g.TessdataDir != "" {
		if err := client.SetTessdataPrefix(g.TessdataDir); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode region: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("gosseract recognize: %w", err)
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, Line{
			Text:       text,
			TopY:       b.Box.Min.Y,
			Confidence: int(math.Round(b.Confidence)),
		})
	}
	return lines, nil
}
