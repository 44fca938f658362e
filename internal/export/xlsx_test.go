package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/veripura/certscan/internal/extract"
	"github.com/veripura/certscan/internal/pipeline"
	"github.com/veripura/certscan/internal/score"
)

func TestBuildReportXLSX_RoundTrips(t *testing.T) {
	res := pipeline.ScanResult{
		ID:   uuid.New(),
		Kind: "IMAGE",
		Report: score.Report{
			Score: 7, Total: 8, Passed: true,
			Details: []score.CheckResult{
				{Label: "Document ID", Status: score.StatusPass, Note: "EU-BIO-123"},
				{Label: "Validity", Status: score.StatusFail, Note: "date missing"},
			},
			Products: []string{"**a) Fruit**", "Organic apples"},
			Fields:   extract.Fields{Header: "EU-BIO-123"},
		},
	}

	data, err := BuildReportXLSX(res, nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Compliance", "B2")
	require.NoError(t, err)
	assert.Equal(t, "PASS: 7/8", v)

	label, err := f.GetCellValue("Compliance", "B6")
	require.NoError(t, err)
	assert.Equal(t, "Document ID", label)
}
