// Command certscan scans a single certificate from the command line and
// prints the compliance report as JSON, or writes it as XLSX.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/veripura/certscan/internal/common"
	"github.com/veripura/certscan/internal/export"
	"github.com/veripura/certscan/internal/pipeline"
	"github.com/veripura/certscan/internal/raster"
	"github.com/veripura/certscan/internal/recognize"
	"github.com/veripura/certscan/internal/template"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	xlsxOut := flag.String("xlsx", "", "write the report as XLSX to this path instead of printing JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "certscan [-xlsx out.xlsx] <document.(pdf|png|jpg)>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	tpl := template.TRACES()
	if cfg.Template.Path != "" {
		var err error
		if tpl, err = template.Load(cfg.Template.Path); err != nil {
			logger.Error("cannot load template descriptor", "path", cfg.Template.Path, "error", err)
			os.Exit(1)
		}
	}

	var engine recognize.Engine
	switch cfg.Recognition.Engine {
	case "gosseract":
		engine = recognize.NewGosseract(cfg.Recognition.TessdataDir, logger)
	default:
		engine = recognize.NewTesseractCLI(cfg.Recognition.Tesseract, cfg.Recognition.TessdataDir,
			cfg.Recognition.PSM, cfg.Recognition.OEM, logger)
	}

	rz := raster.NewRasterizer(cfg.Raster.Pdftoppm, cfg.Raster.DPI, cfg.Raster.MaxPages, logger)
	proc := pipeline.NewProcessor(engine, rz, tpl, cfg.Recognition.Languages, raster.EnhanceOptions{
		Contrast:  cfg.Raster.Contrast,
		Threshold: cfg.Raster.Threshold,
		Sharpen:   cfg.Raster.Sharpen,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := proc.ScanFile(ctx, path)
	if err != nil {
		logger.Error("scan failed", "path", path, "error", err)
		os.Exit(1)
	}

	if *xlsxOut != "" {
		data, err := export.BuildReportXLSX(res, logger)
		if err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, data, 0o644); err != nil {
			logger.Error("write failed", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("report written", "path", *xlsxOut)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode report", "error", err)
		os.Exit(1)
	}
}
