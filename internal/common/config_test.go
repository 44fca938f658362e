package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 2*time.Minute, cfg.Server.ScanTimeout)
	assert.Equal(t, "tesseract", cfg.Recognition.Engine)
	assert.Equal(t, 200, cfg.Raster.DPI)
	assert.Equal(t, 2, cfg.Raster.MaxPages)
	assert.InDelta(t, 1.5, cfg.Raster.Contrast, 0.001)
	assert.Len(t, cfg.Recognition.Languages, 7)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OCR_ENGINE", "gosseract")
	t.Setenv("PDF_DPI", "300")
	t.Setenv("OCR_LANGUAGES", "eng, deu")
	t.Setenv("ENHANCE_THRESHOLD", "true")
	t.Setenv("SCAN_TIMEOUT", "30s")

	cfg := LoadConfig()
	assert.Equal(t, "gosseract", cfg.Recognition.Engine)
	assert.Equal(t, 300, cfg.Raster.DPI)
	assert.Equal(t, []string{"eng", "deu"}, cfg.Recognition.Languages)
	assert.True(t, cfg.Raster.Threshold)
	assert.Equal(t, 30*time.Second, cfg.Server.ScanTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsBadEngine(t *testing.T) {
	cfg := LoadConfig()
	cfg.Recognition.Engine = "paddle"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsEmptyLanguages(t *testing.T) {
	cfg := LoadConfig()
	cfg.Recognition.Languages = nil
	assert.Error(t, cfg.Validate())
}
