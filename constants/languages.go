package constants

// RecognitionLanguages are the tesseract language codes passed to the
// recognition engine. TRACES certificates circulate in all of these.
var RecognitionLanguages = []string{"eng", "deu", "fra", "ita", "spa", "nld", "por"}

// LanguageTags are the ISO 639-1 tags the template descriptors key their
// keyword lists by, in the same order as RecognitionLanguages.
var LanguageTags = []string{"en", "de", "fr", "it", "es", "nl", "pt"}

// TagForRecognitionLanguage maps a tesseract code to its descriptor tag.
func TagForRecognitionLanguage(code string) string {
	for i, c := range RecognitionLanguages {
		if c == code {
			return LanguageTags[i]
		}
	}
	return ""
}
