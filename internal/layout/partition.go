package layout

import (
	"image"

	"github.com/veripura/certscan/internal/template"
)

// ZoneRole tags a zone with the semantic section it crops.
type ZoneRole string

const (
	ZoneHeader    ZoneRole = "header"
	ZoneOperator  ZoneRole = "operator"
	ZoneAuthority ZoneRole = "authority"
	ZoneProducts  ZoneRole = "products"
)

// Zone is one rectangular crop of the page. Invariant: Rect is non-empty
// (x1 > x0 and y1 > y0) for any input anchors, degenerate ones included.
type Zone struct {
	Role ZoneRole
	Rect image.Rectangle
}

// Zones are the four semantic crops of a certificate page.
type Zones struct {
	Header    Zone
	Operator  Zone
	Authority Zone
	Products  Zone
}

// Partition computes the semantic zones from resolved anchors. The column
// split is a fixed vertical bisection at half the page width; the header
// starts at Y=0 and the products zone ends at the footer ratio to exclude
// signature/stamp boilerplate.
func Partition(pageWidth, pageHeight int, a Anchors, tpl *template.Descriptor) Zones {
	half := pageWidth / 2
	colTop := a.Operator + tpl.ColumnPad
	footer := int(float64(pageHeight) * tpl.FooterRatio)

	return Zones{
		Header:    Zone{ZoneHeader, sanitize(0, 0, pageWidth, a.Operator, pageWidth, pageHeight, tpl.HeightFloor)},
		Operator:  Zone{ZoneOperator, sanitize(0, colTop, half, a.Activity, pageWidth, pageHeight, tpl.HeightFloor)},
		Authority: Zone{ZoneAuthority, sanitize(half, colTop, pageWidth, a.Activity, pageWidth, pageHeight, tpl.HeightFloor)},
		Products:  Zone{ZoneProducts, sanitize(0, a.Category, pageWidth, footer, pageWidth, pageHeight, tpl.HeightFloor)},
	}
}

// sanitize clamps a candidate rectangle to the page and enforces the height
// floor: if the bottom edge does not clear the top (anchor misdetection or
// inversion), the zone is forced to floor pixels measured from the top,
// clipped to the page. The result is always non-empty, so a degenerate crop
// can never reach the recognition call.
func sanitize(x0, y0, x1, y1, pageWidth, pageHeight, floor int) image.Rectangle {
	if x0 < 0 {
		x0 = 0
	}
	if x1 > pageWidth {
		x1 = pageWidth
	}
	if x1 <= x0 {
		x1 = pageWidth
		if x1 <= x0 {
			x0, x1 = 0, pageWidth
		}
	}

	if y0 < 0 {
		y0 = 0
	}
	if y0 >= pageHeight {
		y0 = pageHeight - 1
	}
	if y1 > pageHeight {
		y1 = pageHeight
	}
	if y1 <= y0 {
		y1 = y0 + floor
		if y1 > pageHeight {
			y1 = pageHeight
		}
	}
	return image.Rect(x0, y0, x1, y1)
}
