package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/veripura/certscan/constants"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Recognition RecognitionConfig
	Raster      RasterConfig
	Template    TemplateConfig
	Gate        GateConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr    string
	BodyLimit   int // max upload size in bytes
	ScanTimeout time.Duration
}

// RecognitionConfig holds recognition-engine configuration
type RecognitionConfig struct {
	Engine      string // "tesseract" (exec) | "gosseract" (in-process)
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	Languages   []string
	PSM         int // e.g., 6 is good for uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default
}

// RasterConfig holds rasterization and preprocessing configuration
type RasterConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	DPI       int    // rasterization DPI for PDFs, default 200
	MaxPages  int    // pages rendered per PDF, default 2
	Contrast  float64
	Threshold bool
	Sharpen   bool
}

// TemplateConfig holds template-descriptor configuration
type TemplateConfig struct {
	Path string // optional JSON descriptor; empty -> built-in TRACES layout
}

// GateConfig holds the wallet-gate stub configuration. The gate performs a
// plain address-shape and allowlist check only; there is no real
// authentication and no ledger interaction behind it.
type GateConfig struct {
	WalletAllowlist []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
			BodyLimit:   getEnvAsInt("HTTP_BODY_LIMIT", 32<<20),
			ScanTimeout: getEnvAsDuration("SCAN_TIMEOUT", 2*time.Minute),
		},
		Recognition: RecognitionConfig{
			Engine:      getEnv("OCR_ENGINE", "tesseract"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Languages:   getEnvAsList("OCR_LANGUAGES", constants.RecognitionLanguages),
			PSM:         getEnvAsInt("TESSERACT_PSM", 0),
			OEM:         getEnvAsInt("TESSERACT_OEM", 0),
		},
		Raster: RasterConfig{
			Pdftoppm:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			DPI:       getEnvAsInt("PDF_DPI", 200),
			MaxPages:  getEnvAsInt("PDF_MAX_PAGES", 2),
			Contrast:  getEnvAsFloat64("ENHANCE_CONTRAST", 1.5),
			Threshold: getEnvAsBool("ENHANCE_THRESHOLD", false),
			Sharpen:   getEnvAsBool("ENHANCE_SHARPEN", false),
		},
		Template: TemplateConfig{
			Path: getEnv("TEMPLATE_PATH", ""),
		},
		Gate: GateConfig{
			WalletAllowlist: getEnvAsList("WALLET_ALLOWLIST", nil),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	switch c.Recognition.Engine {
	case "tesseract", "gosseract":
	default:
		return NewAppError("CONFIG_ERROR", "OCR_ENGINE must be tesseract or gosseract", ErrInvalidInput)
	}
	if len(c.Recognition.Languages) == 0 {
		return NewAppError("CONFIG_ERROR", "OCR_LANGUAGES must not be empty", ErrInvalidInput)
	}
	if c.Raster.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "PDF_DPI must be positive", ErrInvalidInput)
	}
	if c.Raster.MaxPages <= 0 {
		return NewAppError("CONFIG_ERROR", "PDF_MAX_PAGES must be positive", ErrInvalidInput)
	}
	return nil
}
