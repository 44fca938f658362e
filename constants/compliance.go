package constants

// RegulationCitations is the allow-list of EU regulation references that
// satisfy the legal-reference check. Matched as exact substrings.
var RegulationCitations = []string{"2018/848", "2021/1378"}

// SealPhrases are the electronic-signature markers TRACES prints on issued
// certificates. Matched case-insensitively against the full page text.
var SealPhrases = []string{"electronically signed", "traces"}

// CheckedGlyphs are the characters recognition engines produce for a marked
// checkbox. "8" and "V" are frequent misreads of a filled box.
var CheckedGlyphs = []string{"X", "x", "V", "8", "☑", "[x]", "v"}

// EmptyGlyphs are leading characters that indicate an unmarked checkbox.
var EmptyGlyphs = []string{"O", "0"}

// CategoryMarkers are the prefixes of product category headers on the
// certificate (box letters a) through h), or a plain dash).
var CategoryMarkers = []string{"a)", "b)", "c)", "d)", "e)", "f)", "g)", "h)", "-"}

// BoilerplateMarkers mark lines in the product block that are page furniture
// rather than product entries. Such lines are never classified.
var BoilerplateMarkers = []string{"page", "regulation"}

// MandatoryPhrases are legal phrases every genuine certificate carries.
// The forensic scorer fuzzy-matches these against recognized lines.
var MandatoryPhrases = []string{
	"electronically signed",
	"certificate of inspection",
	"organic production",
}
