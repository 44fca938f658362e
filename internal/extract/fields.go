// Package extract recovers structured fields from zone and full-page text.
// Every sub-extraction is independent and tolerant: a missing field never
// aborts the others, and absence surfaces as an empty result, not an error.
package extract

import "regexp"

// Fields is the complete per-scan text record handed to scoring. Built once
// per scan and immutable afterward; unrecovered zones hold empty strings,
// never nulls.
type Fields struct {
	FullText  string `json:"full_text"`
	Header    string `json:"header"`
	Operator  string `json:"operator"`
	Authority string `json:"authority"`
	Products  string `json:"products"`
}

var (
	// Certificate reference like "EU-BIO-123"; the numeric fallback catches
	// TRACES serials rendered without the alpha prefix.
	reDocumentID    = regexp.MustCompile(`[A-Z]{2}-.*?-\d+`)
	reDocumentIDNum = regexp.MustCompile(`0\d{4,}`)

	// Control-body codes like "DE-ÖKO-007". The umlaut class covers the
	// German control bodies; the ASCII variant is the full-text fallback.
	reAuthorityCode      = regexp.MustCompile(`[A-Z]{2}-[A-ZÖÄÜ]{3,}-\d+`)
	reAuthorityCodeASCII = regexp.MustCompile(`[A-Z]{2}-[A-Z]{3,}-\d+`)
)

// DocumentID returns the certificate reference found in the header zone,
// trying the alphanumeric pattern first and the numeric serial second.
// Empty when neither fires; absence is reportable, not fatal.
func (f Fields) DocumentID() string {
	if m := reDocumentID.FindString(f.Header); m != "" {
		return m
	}
	return reDocumentIDNum.FindString(f.Header)
}

// AuthorityCode returns the control-body code, searched in the authority
// zone first and the full page text as fallback.
func (f Fields) AuthorityCode() string {
	if m := reAuthorityCode.FindString(f.Authority); m != "" {
		return m
	}
	return reAuthorityCodeASCII.FindString(f.FullText)
}
