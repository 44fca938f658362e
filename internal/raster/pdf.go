package raster

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/veripura/certscan/internal/execx"
)

// Rasterizer renders the leading pages of a PDF to rasters via pdftoppm.
type Rasterizer struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"
	DPI      int    // default 200
	MaxPages int    // default 2; bounds memory on long certificates

	Runner execx.Runner
	Logger *slog.Logger
}

func NewRasterizer(pdftoppm string, dpi, maxPages int, logger *slog.Logger) *Rasterizer {
	if pdftoppm == "" {
		pdftoppm = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 200
	}
	if maxPages <= 0 {
		maxPages = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rasterizer{Pdftoppm: pdftoppm, DPI: dpi, MaxPages: maxPages, Runner: execx.ExecRunner{}, Logger: logger}
}

// Rasterize renders pages 1..MaxPages of the PDF at the configured DPI.
func (r *Rasterizer) Rasterize(ctx context.Context, path string) ([]image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "cs-pp-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			r.Logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 200 -f 1 -l 2 -png <in.pdf> <tmp/page>
	_, errb, err := r.Runner.Run(ctx, r.Pdftoppm,
		"-r", fmt.Sprintf("%d", r.DPI),
		"-f", "1", "-l", fmt.Sprintf("%d", r.MaxPages),
		"-png", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) > r.MaxPages {
		matches = matches[:r.MaxPages]
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([]image.Image, 0, len(matches))
	for _, m := range matches {
		img, err := DecodeFile(m)
		if err != nil {
			return nil, fmt.Errorf("decode rendered page %s: %w", filepath.Base(m), err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
