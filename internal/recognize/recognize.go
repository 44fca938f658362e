// Package recognize defines the narrow contract every text-recognition
// engine is normalized behind. Engine-specific quirks (TSV columns, iterator
// levels, confidence scales) stay inside the adapters; callers only ever see
// Lines.
package recognize

import (
	"context"
	"image"
	"strings"
)

// ConfidenceAbsent marks a line whose engine reported no confidence.
const ConfidenceAbsent = -1

// Line is one recognized text line in reading order.
type Line struct {
	Text       string
	TopY       int // top of the line's bounding box, page coordinates
	Confidence int // 0..100, or ConfidenceAbsent
}

// Engine turns a raster region into recognized lines.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, languages []string) ([]Line, error)
}

// Text joins line texts with newlines, preserving reading order.
func Text(lines []Line) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// MeanConfidence returns the mean confidence over lines that report one,
// or ConfidenceAbsent when none do.
func MeanConfidence(lines []Line) float64 {
	var sum, n float64
	for _, ln := range lines {
		if ln.Confidence >= 0 {
			sum += float64(ln.Confidence)
			n++
		}
	}
	if n == 0 {
		return ConfidenceAbsent
	}
	return sum / n
}
