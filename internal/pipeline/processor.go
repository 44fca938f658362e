// Package pipeline wires the scan stages together: preprocess, full-page
// recognition, anchor resolution, zone partition, per-zone recognition,
// field extraction, scoring. Strictly sequential per document; concurrent
// documents share nothing, so callers may run one Scan per goroutine.
package pipeline

import (
	"context"
	"image"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/veripura/certscan/constants"
	"github.com/veripura/certscan/internal/common"
	"github.com/veripura/certscan/internal/extract"
	"github.com/veripura/certscan/internal/layout"
	"github.com/veripura/certscan/internal/raster"
	"github.com/veripura/certscan/internal/recognize"
	"github.com/veripura/certscan/internal/score"
	"github.com/veripura/certscan/internal/template"
)

// Processor runs the scan pipeline over one document at a time.
type Processor struct {
	Engine     recognize.Engine
	Rasterizer *raster.Rasterizer
	Template   *template.Descriptor
	Languages  []string // tesseract codes passed to the engine
	Enhance    raster.EnhanceOptions
	Rubric     *score.Rubric
	Forensic   *score.ForensicScorer
	Log        *slog.Logger
}

func NewProcessor(engine recognize.Engine, rz *raster.Rasterizer, tpl *template.Descriptor, languages []string, enhance raster.EnhanceOptions, logger *slog.Logger) *Processor {
	if tpl == nil {
		tpl = template.TRACES()
	}
	if len(languages) == 0 {
		languages = constants.RecognitionLanguages
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Engine:     engine,
		Rasterizer: rz,
		Template:   tpl,
		Languages:  languages,
		Enhance:    enhance,
		Rubric:     score.NewRubric(),
		Forensic:   score.NewForensicScorer(),
		Log:        logger,
	}
}

// ScanResult is the complete outcome of one document scan.
type ScanResult struct {
	ID         uuid.UUID            `json:"id"`
	Kind       string               `json:"kind"`
	Pages      int                  `json:"pages"`
	Report     score.Report         `json:"report"`
	Forensic   score.ForensicReport `json:"forensic"`
	DurationMS int64                `json:"duration_ms"`
}

// ScanFile decodes the document at path and runs the pipeline. Unsupported
// or corrupt input is terminal for the document; no partial report is
// produced past this boundary.
func (p *Processor) ScanFile(ctx context.Context, path string) (ScanResult, error) {
	kind := constants.MapExtToKind(filepath.Ext(path))
	switch kind {
	case constants.PDF:
		pages, err := p.Rasterizer.Rasterize(ctx, path)
		if err != nil {
			return ScanResult{}, common.NewAppError("RASTERIZE_ERROR", "cannot rasterize pdf", err)
		}
		return p.Scan(ctx, pages, kind)
	case constants.IMAGE:
		img, err := raster.DecodeFile(path)
		if err != nil {
			return ScanResult{}, err
		}
		return p.Scan(ctx, []image.Image{img}, kind)
	default:
		return ScanResult{}, common.NewAppError("INPUT_ERROR", "unsupported file extension", common.ErrUnsupported)
	}
}

// Scan runs the pipeline over already-decoded pages. Page 1 drives anchors
// and zones; page 2, when present, supplies the product block whole-page.
func (p *Processor) Scan(ctx context.Context, pages []image.Image, kind string) (ScanResult, error) {
	if len(pages) == 0 {
		return ScanResult{}, common.NewAppError("INPUT_ERROR", "no pages to scan", common.ErrInvalidInput)
	}
	start := time.Now()
	scanID := uuid.New()

	page := raster.Enhance(pages[0], p.Enhance)
	w := page.Bounds().Dx()
	h := page.Bounds().Dy()

	lines, err := p.recognizeRetry(ctx, page)
	if err != nil {
		return ScanResult{}, common.NewAppError("RECOGNITION_ERROR", "full-page recognition failed", err)
	}

	tags := languageTags(p.Languages)
	anchors := layout.ResolveAnchors(lines, p.Template, tags, h)
	zones := layout.Partition(w, h, anchors, p.Template)

	p.Log.Debug("processor.anchors",
		"scan_id", scanID,
		"operator_y", anchors.Operator, "operator_defaulted", anchors.OperatorDefaulted,
		"activity_y", anchors.Activity, "activity_defaulted", anchors.ActivityDefaulted,
		"category_y", anchors.Category, "category_defaulted", anchors.CategoryDefaulted,
	)

	fields := extract.Fields{
		FullText:  recognize.Text(lines),
		Header:    p.zoneText(ctx, page, zones.Header),
		Operator:  p.zoneText(ctx, page, zones.Operator),
		Authority: p.zoneText(ctx, page, zones.Authority),
	}

	if len(pages) > 1 {
		second := raster.Enhance(pages[1], p.Enhance)
		if plines, err := p.Engine.Recognize(ctx, second, p.Languages); err != nil {
			p.Log.Warn("processor.products_page.failed", "scan_id", scanID, "err", err)
		} else {
			fields.Products = recognize.Text(plines)
		}
	} else {
		fields.Products = p.zoneText(ctx, page, zones.Products)
	}

	report := p.Rubric.Evaluate(fields)
	forensic := p.Forensic.Evaluate(lines, fields.FullText)

	res := ScanResult{
		ID:         scanID,
		Kind:       kind,
		Pages:      len(pages),
		Report:     report,
		Forensic:   forensic,
		DurationMS: time.Since(start).Milliseconds(),
	}
	p.Log.Info("processor.scan.ok",
		"scan_id", scanID,
		"kind", kind,
		"pages", res.Pages,
		"score", report.Score,
		"total", report.Total,
		"passed", report.Passed,
		"risk", forensic.Risk,
		"elapsed_ms", res.DurationMS,
	)
	return res, nil
}

// recognizeRetry retries the full-page pass once: recognition failures are
// occasionally transient (resource exhaustion), not document content.
func (p *Processor) recognizeRetry(ctx context.Context, img image.Image) ([]recognize.Line, error) {
	lines, err := p.Engine.Recognize(ctx, img, p.Languages)
	if err == nil {
		return lines, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	p.Log.Warn("processor.recognize.retry", "err", err)
	return p.Engine.Recognize(ctx, img, p.Languages)
}

// zoneText recognizes one zone crop. A failing zone degrades to empty text
// so extraction and scoring proceed with complete, if degraded, data.
func (p *Processor) zoneText(ctx context.Context, page *image.Gray, z layout.Zone) string {
	crop := page.SubImage(z.Rect)
	lines, err := p.Engine.Recognize(ctx, crop, p.Languages)
	if err != nil {
		p.Log.Warn("processor.zone.failed", "zone", z.Role, "err", err)
		return ""
	}
	return recognize.Text(lines)
}

func languageTags(codes []string) []string {
	tags := make([]string, 0, len(codes))
	for _, c := range codes {
		if tag := constants.TagForRecognitionLanguage(c); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = constants.LanguageTags
	}
	return tags
}
