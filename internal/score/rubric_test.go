package score

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veripura/certscan/internal/extract"
)

func fixedRubric() *Rubric {
	r := NewRubric()
	r.Now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func compliantFields() extract.Fields {
	return extract.Fields{
		Header:    "CERTIFICATE OF INSPECTION EU-BIO-123",
		Operator:  "Green Farms GmbH\nHauptstraße 1, Berlin",
		Authority: "DE-ÖKO-007",
		Products:  "a) Unprocessed plants\nX Organic apples",
		FullText: "CERTIFICATE OF INSPECTION EU-BIO-123\n" +
			"Activity: production\n" +
			"Regulation (EU) 2018/848\n" +
			"Electronically signed in TRACES\n" +
			"Valid until 31.12.2030\n",
	}
}

func TestEvaluate_AllChecksSatisfied(t *testing.T) {
	rep := fixedRubric().Evaluate(compliantFields())
	assert.Equal(t, 8, rep.Total)
	assert.Equal(t, rep.Total, rep.Score)
	assert.True(t, rep.Passed)
	require.Len(t, rep.Details, 8)
	for _, d := range rep.Details {
		assert.Equal(t, StatusPass, d.Status, d.Label)
	}
	assert.Equal(t, []string{"**a) Unprocessed plants**", "Organic apples"}, rep.Products)
}

func TestEvaluate_EmptyFields(t *testing.T) {
	rep := fixedRubric().Evaluate(extract.Fields{})
	assert.Equal(t, 0, rep.Score)
	assert.False(t, rep.Passed)
	require.Len(t, rep.Details, 8)
	for _, d := range rep.Details {
		assert.NotEqual(t, StatusPass, d.Status, d.Label)
	}
	assert.Empty(t, rep.Products)
}

func TestEvaluate_ExpiredIsDistinctFromMissing(t *testing.T) {
	r := fixedRubric()

	f := compliantFields()
	f.FullText = "Activity 2018/848 electronically signed\nValid until 01.01.2022"
	rep := r.Evaluate(f)
	last := rep.Details[len(rep.Details)-1]
	assert.Equal(t, StatusFail, last.Status)
	assert.Contains(t, last.Note, "expired 2022-01-01")

	f.FullText = "Activity 2018/848 electronically signed\nValid until 2022-06-30"
	rep = r.Evaluate(f)
	last = rep.Details[len(rep.Details)-1]
	assert.Equal(t, StatusFail, last.Status)
	assert.Contains(t, last.Note, "expired 2022-06-30")

	f.FullText = "Activity 2018/848 electronically signed, no dates"
	rep = r.Evaluate(f)
	last = rep.Details[len(rep.Details)-1]
	assert.Equal(t, StatusFail, last.Status)
	assert.Contains(t, last.Note, "missing")
}

func TestEvaluate_OneShortOfPass(t *testing.T) {
	f := compliantFields()
	f.Products = "" // drop the active-products point
	rep := fixedRubric().Evaluate(f)
	assert.Equal(t, 7, rep.Score)
	assert.True(t, rep.Passed)

	f.Operator = "" // and the operator point
	rep = fixedRubric().Evaluate(f)
	assert.Equal(t, 6, rep.Score)
	assert.False(t, rep.Passed)
}

func TestEvaluate_TotalDecoupledFromCheckCount(t *testing.T) {
	r := fixedRubric()
	r.Total = 10
	rep := r.Evaluate(compliantFields())
	assert.Equal(t, 10, rep.Total)
	assert.Equal(t, 8, rep.Score)
	assert.True(t, rep.Passed) // PassScore unchanged at 7
}
