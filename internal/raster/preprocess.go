package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// UpsampleMinWidth is the page width below which the 2x upsample kicks in.
// Phone photos and low-DPI renders land under it; scanner output does not.
const UpsampleMinWidth = 2000

const thresholdCutoff = 200

// EnhanceOptions control the preprocessing chain applied before recognition.
type EnhanceOptions struct {
	Contrast  float64 // multiplier around mid-gray; <= 0 defaults to 1.5
	Threshold bool    // fixed binarization, pixel > 200 -> white
	Sharpen   bool
}

// Enhance runs the fixed preprocessing chain: optional 2x upsample, then
// luminance conversion, contrast boost, and the optional threshold/sharpen
// steps. Pure function of its inputs; always returns a valid raster and
// never changes dimensions other than on the upsample path.
func Enhance(src image.Image, opts EnhanceOptions) *image.Gray {
	if src.Bounds().Dx() < UpsampleMinWidth {
		src = upsample2x(src)
	}

	gray := toGray(src)
	contrast := opts.Contrast
	if contrast <= 0 {
		contrast = 1.5
	}
	applyContrast(gray, contrast)
	if opts.Sharpen {
		gray = sharpen(gray)
	}
	if opts.Threshold {
		applyThreshold(gray)
	}
	return gray
}

func upsample2x(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*2, b.Dy()*2))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}

func applyContrast(img *image.Gray, factor float64) {
	// Precomputed lookup keeps the per-pixel loop branch-free.
	var lut [256]uint8
	for i := 0; i < 256; i++ {
		v := 128 + (float64(i)-128)*factor
		lut[i] = clampByte(v)
	}
	for i, p := range img.Pix {
		img.Pix[i] = lut[p]
	}
}

func applyThreshold(img *image.Gray) {
	for i, p := range img.Pix {
		if p > thresholdCutoff {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 0
		}
	}
}

// sharpen applies a 3x3 unsharp kernel (center 5, cross -1).
func sharpen(img *image.Gray) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	copy(out.Pix, img.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := int(img.GrayAt(x, y).Y)
			sum := 5*c -
				int(img.GrayAt(x, y-1).Y) -
				int(img.GrayAt(x, y+1).Y) -
				int(img.GrayAt(x-1, y).Y) -
				int(img.GrayAt(x+1, y).Y)
			out.Pix[out.PixOffset(x, y)] = clampByte(float64(sum))
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
