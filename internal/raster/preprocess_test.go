package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestEnhance_KeepsDimensionsAboveUpsampleWidth(t *testing.T) {
	src := uniformGray(2400, 300, 128)
	out := Enhance(src, EnhanceOptions{})
	assert.Equal(t, 2400, out.Bounds().Dx())
	assert.Equal(t, 300, out.Bounds().Dy())
}

func TestEnhance_UpsamplesNarrowPages(t *testing.T) {
	src := uniformGray(1000, 400, 128)
	out := Enhance(src, EnhanceOptions{})
	assert.Equal(t, 2000, out.Bounds().Dx())
	assert.Equal(t, 800, out.Bounds().Dy())
}

func TestEnhance_ThresholdBinarizes(t *testing.T) {
	tests := []struct {
		name string
		in   uint8
		want uint8
	}{
		// contrast 1.5 runs first: 250 -> 255, 100 -> 86, 200 -> 236
		{"bright pixel goes white", 250, 255},
		{"dark pixel goes black", 100, 0},
		{"boosted midtone crosses the cutoff", 200, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := uniformGray(2000, 4, tt.in)
			out := Enhance(src, EnhanceOptions{Threshold: true})
			for _, p := range out.Pix {
				require.Equal(t, tt.want, p)
			}
		})
	}
}

func TestEnhance_Deterministic(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2000, 8))
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 251)
	}
	a := Enhance(src, EnhanceOptions{Contrast: 2.0, Sharpen: true})
	b := Enhance(src, EnhanceOptions{Contrast: 2.0, Sharpen: true})
	assert.Equal(t, a.Pix, b.Pix)
}
