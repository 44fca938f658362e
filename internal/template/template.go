// Package template describes a certificate layout as data: per-language
// keyword sets for the semantic anchors plus the proportional fallback
// geometry. Descriptors are loaded once at startup and passed explicitly
// into the locator and partitioner; supporting a new certificate layout
// means shipping a new descriptor, not touching pipeline code.
package template

import "strings"

// AnchorSpec names the landmarks of one semantic section.
type AnchorSpec struct {
	// Markers are language-neutral box numbers printed on the form ("1.3").
	Markers []string `json:"markers"`
	// Keywords maps an ISO 639-1 tag to the label words for that language.
	Keywords map[string][]string `json:"keywords"`
	// DefaultRatio is the proportional fallback position (fraction of page
	// height) used when the anchor cannot be located.
	DefaultRatio float64 `json:"default_ratio"`
}

// KeywordsFor merges markers with the keyword lists of the requested
// language tags, lowercased and deduplicated. Unknown tags are skipped.
func (a AnchorSpec) KeywordsFor(tags []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(a.Markers)+4*len(tags))
	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return
		}
		if _, ok := seen[kw]; ok {
			return
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	for _, m := range a.Markers {
		add(m)
	}
	for _, tag := range tags {
		for _, kw := range a.Keywords[tag] {
			add(kw)
		}
	}
	return out
}

// Descriptor is an immutable description of one certificate layout.
type Descriptor struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`

	Operator AnchorSpec `json:"operator"` // box 1.3: operator name/address
	Activity AnchorSpec `json:"activity"` // box 1.5: activities
	Category AnchorSpec `json:"category"` // box 1.6: product categories

	// FooterRatio is where the products zone ends, excluding the
	// signature/stamp boilerplate at the page bottom.
	FooterRatio float64 `json:"footer_ratio"`
	// ColumnPad is the vertical gap (px) between the operator anchor and the
	// top of the operator/authority columns.
	ColumnPad int `json:"column_pad"`
	// HeightFloor is the minimum zone height (px) forced when anchors
	// collapse or invert.
	HeightFloor int `json:"height_floor"`
	// MinConfidence gates anchor matches; lines below it are ignored.
	MinConfidence int `json:"min_confidence"`
}

// TRACES returns the built-in descriptor for the EU TRACES certificate of
// inspection layout.
func TRACES() *Descriptor {
	return &Descriptor{
		Name:      "eu-traces-coi",
		Languages: []string{"en", "de", "fr", "it", "es", "nl", "pt"},
		Operator: AnchorSpec{
			Markers: []string{"1.3", "3."},
			Keywords: map[string][]string{
				"en": {"address", "operator"},
				"de": {"anschrift", "unternehmer"},
				"fr": {"adresse", "opérateur"},
				"it": {"indirizzo", "operatore"},
				"es": {"dirección", "operador"},
				"nl": {"adres", "marktdeelnemer"},
				"pt": {"endereço", "operador"},
			},
			DefaultRatio: 0.15,
		},
		Activity: AnchorSpec{
			Markers: []string{"1.5", "5."},
			Keywords: map[string][]string{
				"en": {"activity"},
				"de": {"tätigkeit"},
				"fr": {"activité"},
				"it": {"attività"},
				"es": {"actividad"},
				"nl": {"activiteit"},
				"pt": {"atividade"},
			},
			DefaultRatio: 0.50,
		},
		Category: AnchorSpec{
			Markers: []string{"1.6", "6."},
			Keywords: map[string][]string{
				"en": {"category"},
				"de": {"kategorie"},
				"fr": {"catégorie"},
				"it": {"categoria"},
				"es": {"categoría"},
				"nl": {"categorie"},
				"pt": {"categoria"},
			},
			DefaultRatio: 0.60,
		},
		FooterRatio:   0.95,
		ColumnPad:     50,
		HeightFloor:   500,
		MinConfidence: 45,
	}
}

// applyDefaults fills zero-valued geometry with the TRACES calibration so a
// minimal JSON descriptor only has to override what differs.
func (d *Descriptor) applyDefaults() {
	if d.FooterRatio <= 0 || d.FooterRatio > 1 {
		d.FooterRatio = 0.95
	}
	if d.ColumnPad <= 0 {
		d.ColumnPad = 50
	}
	if d.HeightFloor <= 0 {
		d.HeightFloor = 500
	}
	if d.MinConfidence <= 0 {
		d.MinConfidence = 45
	}
	if d.Operator.DefaultRatio <= 0 {
		d.Operator.DefaultRatio = 0.15
	}
	if d.Activity.DefaultRatio <= 0 {
		d.Activity.DefaultRatio = 0.50
	}
	if d.Category.DefaultRatio <= 0 {
		d.Category.DefaultRatio = 0.60
	}
}
