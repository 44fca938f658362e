package extract

import (
	"strings"

	"github.com/veripura/certscan/constants"
)

// ParseCheckedProducts classifies the product-block lines into category
// headers and active (checked) product entries, preserving document order.
// Rules apply first-match per line:
//
//  1. lines carrying boilerplate markers are never classified;
//  2. lines starting with a category marker (a)..h), "-") are headers,
//     kept emphasized;
//  3. lines starting with a checked glyph are active; the leading glyph
//     run is stripped from the output;
//  4. lines containing "organic" that do not start with an empty-checkbox
//     glyph are also active.
//
// Rule 4 is a heuristic: engines frequently misread a filled box as part of
// the adjacent word rather than as its own character, so the word itself is
// the best remaining signal. It has no ground truth in the layout and can
// both over- and under-count.
func ParseCheckedProducts(text string) []string {
	var active []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if containsAny(lower, constants.BoilerplateMarkers) {
			continue
		}

		if hasAnyPrefix(lower, constants.CategoryMarkers) {
			active = append(active, "**"+line+"**")
			continue
		}

		checked := hasAnyPrefix(line, constants.CheckedGlyphs)
		if !checked && strings.Contains(lower, "organic") && !hasAnyPrefix(line, constants.EmptyGlyphs) {
			checked = true
		}
		if !checked {
			continue
		}

		if clean := trimLeadingGlyphs(line); clean != "" {
			active = append(active, clean)
		}
	}
	return active
}

// trimLeadingGlyphs removes the run of checkbox glyphs at the start of the
// line. Glyph characters inside a product name ("olive", "8-grain") are
// content, not marks, and stay untouched.
func trimLeadingGlyphs(s string) string {
	for {
		trimmed := false
		for _, g := range constants.CheckedGlyphs {
			if strings.HasPrefix(s, g) {
				s = strings.TrimSpace(strings.TrimPrefix(s, g))
				trimmed = true
			}
		}
		if !trimmed {
			return s
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
