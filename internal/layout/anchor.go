package layout

import (
	"strings"

	"github.com/veripura/certscan/internal/recognize"
	"github.com/veripura/certscan/internal/template"
)

// LocateAnchor returns the top Y of the first line whose lowercased text
// contains one of the keywords and whose confidence, when reported, meets
// minConfidence. First match wins: the true landmark sits near the top of
// its section, and a later spurious hit (the word "operator" in a
// disclaimer, say) must not override it. ok is false when nothing qualifies.
func LocateAnchor(lines []recognize.Line, keywords []string, minConfidence int) (int, bool) {
	for _, ln := range lines {
		if ln.Confidence >= 0 && ln.Confidence < minConfidence {
			continue
		}
		text := strings.ToLower(ln.Text)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return ln.TopY, true
			}
		}
	}
	return 0, false
}

// Anchors are the resolved vertical landmarks of one page. Every value is
// concrete: defaulting is mandatory, so no downstream consumer ever sees an
// absent anchor.
type Anchors struct {
	Operator int // top of box 1.3
	Activity int // top of box 1.5
	Category int // top of box 1.6

	// Defaulted flags record which anchors fell back to the proportional
	// template position rather than a keyword match.
	OperatorDefaulted bool
	ActivityDefaulted bool
	CategoryDefaulted bool
}

// ResolveAnchors locates the template's anchors in the full-page lines,
// substituting the proportional defaults for any that cannot be found.
func ResolveAnchors(lines []recognize.Line, tpl *template.Descriptor, languageTags []string, pageHeight int) Anchors {
	resolve := func(spec template.AnchorSpec) (int, bool) {
		if y, ok := LocateAnchor(lines, spec.KeywordsFor(languageTags), tpl.MinConfidence); ok {
			return y, false
		}
		return int(float64(pageHeight) * spec.DefaultRatio), true
	}

	var a Anchors
	a.Operator, a.OperatorDefaulted = resolve(tpl.Operator)
	a.Activity, a.ActivityDefaulted = resolve(tpl.Activity)
	a.Category, a.CategoryDefaulted = resolve(tpl.Category)
	return a
}
