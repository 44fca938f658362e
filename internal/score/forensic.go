package score

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/veripura/certscan/constants"
	"github.com/veripura/certscan/internal/recognize"
)

// ForensicReport is the anomaly assessment of one scan, additive to but
// independent of the point rubric.
type ForensicReport struct {
	Risk           int      `json:"risk"` // 0..100
	MeanConfidence float64  `json:"mean_confidence"`
	Issues         []string `json:"issues"`
}

// ForensicScorer flags scans whose recognition quality or template shape
// looks wrong: low mean confidence, or several mandatory legal phrases
// absent with nothing on the page even fuzzily resembling them.
type ForensicScorer struct {
	MandatoryPhrases []string
	SimilarityFloor  float64 // line similarity ratio above which a phrase counts as present
	ConfidenceFloor  float64 // mean confidence below which the scan is penalized
}

func NewForensicScorer() *ForensicScorer {
	return &ForensicScorer{
		MandatoryPhrases: constants.MandatoryPhrases,
		SimilarityFloor:  0.75,
		ConfidenceFloor:  60,
	}
}

var levParams = levenshtein.NewParams()

// Evaluate computes the risk score from the full-page lines.
func (s *ForensicScorer) Evaluate(lines []recognize.Line, fullText string) ForensicReport {
	rep := ForensicReport{MeanConfidence: recognize.MeanConfidence(lines)}

	if rep.MeanConfidence >= 0 && rep.MeanConfidence < s.ConfidenceFloor {
		penalty := int(s.ConfidenceFloor - rep.MeanConfidence)
		if penalty > 40 {
			penalty = 40
		}
		rep.Risk += penalty
		rep.Issues = append(rep.Issues,
			fmt.Sprintf("low recognition confidence (mean %.0f)", rep.MeanConfidence))
	}

	fullLower := strings.ToLower(fullText)
	absent := 0
	fuzzyHit := false
	for _, phrase := range s.MandatoryPhrases {
		if strings.Contains(fullLower, phrase) {
			continue
		}
		absent++
		if s.bestLineSimilarity(lines, phrase) > s.SimilarityFloor {
			fuzzyHit = true
		}
	}
	if absent > 1 && !fuzzyHit {
		rep.Risk += 40
		rep.Issues = append(rep.Issues,
			fmt.Sprintf("template mismatch: %d mandatory phrases absent", absent))
	}

	if rep.Risk > 100 {
		rep.Risk = 100
	}
	return rep
}

func (s *ForensicScorer) bestLineSimilarity(lines []recognize.Line, phrase string) float64 {
	best := 0.0
	for _, ln := range lines {
		if sim := levenshtein.Similarity(strings.ToLower(ln.Text), phrase, levParams); sim > best {
			best = sim
		}
	}
	return best
}
