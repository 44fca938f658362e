// Package score applies the fixed compliance rubric over extracted fields.
// Pure functions: no retries, no recognition calls, order-insensitive
// scoring (order affects report display only).
package score

import (
	"fmt"
	"strings"
	"time"

	"github.com/veripura/certscan/constants"
	"github.com/veripura/certscan/internal/extract"
)

// Status of one rubric check. Warn vs. fail is a presentation distinction
// only; both withhold the point.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckResult is one labeled proposition in the report details.
type CheckResult struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Note   string `json:"note,omitempty"`
}

// Report is the immutable outcome of scoring one document.
type Report struct {
	Score    int            `json:"score"`
	Total    int            `json:"total"`
	Passed   bool           `json:"passed"`
	Details  []CheckResult  `json:"details"`
	Products []string       `json:"products"`
	Fields   extract.Fields `json:"fields"`
}

// Rubric holds the scoring configuration. Total is deliberately decoupled
// from the number of checks.
type Rubric struct {
	Total     int // points in the rubric, default 8
	PassScore int // minimum score for a pass verdict, default 7

	// OperatorMinLength is the character floor below which the operator
	// zone is treated as recognition noise rather than content.
	OperatorMinLength int

	// Now is the evaluation clock for the expiry check; nil means time.Now.
	Now func() time.Time
}

func NewRubric() *Rubric {
	return &Rubric{Total: 8, PassScore: 7, OperatorMinLength: 5}
}

func (r *Rubric) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Evaluate applies the rubric to the extracted fields. Every check
// tolerates empty input: an entirely empty Fields yields score 0 with all
// checks reported, never an error.
func (r *Rubric) Evaluate(fields extract.Fields) Report {
	rep := Report{Total: r.Total, Fields: fields}
	fullLower := strings.ToLower(fields.FullText)

	award := func(res CheckResult) {
		if res.Status == StatusPass {
			rep.Score++
		}
		rep.Details = append(rep.Details, res)
	}

	// 1. Document ID in the header zone, two patterns in sequence.
	if id := fields.DocumentID(); id != "" {
		award(CheckResult{Label: "Document ID", Status: StatusPass, Note: id})
	} else {
		award(CheckResult{Label: "Document ID", Status: StatusFail, Note: "missing"})
	}

	// 2. Operator zone has plausible content.
	if len(fields.Operator) > r.OperatorMinLength {
		award(CheckResult{Label: "Operator details", Status: StatusPass})
	} else {
		award(CheckResult{Label: "Operator details", Status: StatusFail, Note: "unclear"})
	}

	// 3. Control-body code, zone first then full text.
	if code := fields.AuthorityCode(); code != "" {
		award(CheckResult{Label: "Control body", Status: StatusPass, Note: code})
	} else {
		award(CheckResult{Label: "Control body", Status: StatusWarn, Note: "code not found"})
	}

	// 4. Activities mentioned anywhere.
	if strings.Contains(fullLower, "activity") {
		award(CheckResult{Label: "Activities", Status: StatusPass})
	} else {
		award(CheckResult{Label: "Activities", Status: StatusWarn, Note: "missing"})
	}

	// 5. At least one active product recovered.
	rep.Products = extract.ParseCheckedProducts(fields.Products)
	if len(rep.Products) > 0 {
		award(CheckResult{Label: "Active products", Status: StatusPass, Note: fmt.Sprintf("%d found", len(rep.Products))})
	} else {
		award(CheckResult{Label: "Active products", Status: StatusFail, Note: "none found"})
	}

	// 6. EU regulation citation.
	if cite := firstContained(fields.FullText, constants.RegulationCitations); cite != "" {
		award(CheckResult{Label: "EU regulation cited", Status: StatusPass, Note: cite})
	} else {
		award(CheckResult{Label: "EU regulation cited", Status: StatusFail, Note: "missing legal reference"})
	}

	// 7. Electronic seal marker.
	if seal := firstContained(fullLower, constants.SealPhrases); seal != "" {
		award(CheckResult{Label: "Electronic seal", Status: StatusPass})
	} else {
		award(CheckResult{Label: "Electronic seal", Status: StatusWarn, Note: "not detected"})
	}

	// 8. Expiry date recoverable and in the future. Expired is a distinct
	// failure, not merely missing.
	if expiry, ok := extract.ResolveExpiry(fields.FullText); ok {
		if expiry.After(r.now()) {
			award(CheckResult{Label: "Validity", Status: StatusPass, Note: "valid until " + expiry.Format("2006-01-02")})
		} else {
			award(CheckResult{Label: "Validity", Status: StatusFail, Note: "expired " + expiry.Format("2006-01-02")})
		}
	} else {
		award(CheckResult{Label: "Validity", Status: StatusFail, Note: "date missing"})
	}

	if rep.Score > rep.Total {
		rep.Score = rep.Total
	}
	rep.Passed = rep.Score >= r.PassScore
	return rep
}

func firstContained(haystack string, needles []string) string {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return n
		}
	}
	return ""
}
