package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTRACES_Calibration(t *testing.T) {
	tpl := TRACES()
	assert.Equal(t, 0.15, tpl.Operator.DefaultRatio)
	assert.Equal(t, 0.50, tpl.Activity.DefaultRatio)
	assert.Equal(t, 0.60, tpl.Category.DefaultRatio)
	assert.Equal(t, 0.95, tpl.FooterRatio)
	assert.Equal(t, 50, tpl.ColumnPad)
	assert.Equal(t, 500, tpl.HeightFloor)
	assert.Equal(t, 45, tpl.MinConfidence)
	assert.Len(t, tpl.Languages, 7)
}

func TestKeywordsFor_MergesAndDedups(t *testing.T) {
	spec := AnchorSpec{
		Markers: []string{"1.3", "3."},
		Keywords: map[string][]string{
			"en": {"Operator", "address"},
			"de": {"Unternehmer", "operator"}, // duplicate across languages
		},
	}
	got := spec.KeywordsFor([]string{"en", "de", "xx"})
	assert.Equal(t, []string{"1.3", "3.", "operator", "address", "unternehmer"}, got)
}

func TestParse_ValidDescriptor(t *testing.T) {
	data := []byte(`{
		"name": "custom-layout",
		"languages": ["en"],
		"operator": {"markers": ["1.3"], "keywords": {"en": ["operator"]}, "default_ratio": 0.2},
		"activity": {"keywords": {"en": ["activity"]}, "default_ratio": 0.5},
		"category": {"keywords": {"en": ["category"]}, "default_ratio": 0.65}
	}`)
	tpl, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "custom-layout", tpl.Name)
	assert.Equal(t, 0.2, tpl.Operator.DefaultRatio)
	// unspecified geometry falls back to the TRACES calibration
	assert.Equal(t, 0.95, tpl.FooterRatio)
	assert.Equal(t, 500, tpl.HeightFloor)
	assert.Equal(t, 45, tpl.MinConfidence)
}

func TestParse_RejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing anchors", `{"name": "x", "languages": ["en"]}`},
		{"ratio out of range", `{
			"name": "x", "languages": ["en"],
			"operator": {"default_ratio": 1.5},
			"activity": {"default_ratio": 0.5},
			"category": {"default_ratio": 0.6}
		}`},
		{"unknown field", `{
			"name": "x", "languages": ["en"], "surprise": true,
			"operator": {"default_ratio": 0.2},
			"activity": {"default_ratio": 0.5},
			"category": {"default_ratio": 0.6}
		}`},
		{"not json", `{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	data := `{
		"name": "disk-layout",
		"languages": ["en", "de"],
		"operator": {"markers": ["1.3"], "keywords": {}, "default_ratio": 0.15},
		"activity": {"keywords": {}, "default_ratio": 0.5},
		"category": {"keywords": {}, "default_ratio": 0.6},
		"min_confidence": 40
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tpl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "disk-layout", tpl.Name)
	assert.Equal(t, 40, tpl.MinConfidence)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
