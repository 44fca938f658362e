package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/veripura/certscan/internal/common"
	"github.com/veripura/certscan/internal/pipeline"
	"github.com/veripura/certscan/internal/raster"
	"github.com/veripura/certscan/internal/recognize"
	"github.com/veripura/certscan/internal/server"
	"github.com/veripura/certscan/internal/template"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(slogger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	tpl, err := loadTemplate(cfg.Template)
	if err != nil {
		logger.Fatal("cannot load template descriptor", zap.Error(err))
	}

	var engine recognize.Engine
	switch cfg.Recognition.Engine {
	case "gosseract":
		engine = recognize.NewGosseract(cfg.Recognition.TessdataDir, slogger)
	default:
		engine = recognize.NewTesseractCLI(cfg.Recognition.Tesseract, cfg.Recognition.TessdataDir,
			cfg.Recognition.PSM, cfg.Recognition.OEM, slogger)
	}

	rz := raster.NewRasterizer(cfg.Raster.Pdftoppm, cfg.Raster.DPI, cfg.Raster.MaxPages, slogger)
	proc := pipeline.NewProcessor(engine, rz, tpl, cfg.Recognition.Languages, raster.EnhanceOptions{
		Contrast:  cfg.Raster.Contrast,
		Threshold: cfg.Raster.Threshold,
		Sharpen:   cfg.Raster.Sharpen,
	}, slogger)

	srv := server.New(cfg.Server, cfg.Gate, proc, logger)

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(cfg.Server.HTTPAddr) }()

	logger.Info("certscand listening",
		zap.String("addr", cfg.Server.HTTPAddr),
		zap.String("engine", cfg.Recognition.Engine),
		zap.String("template", tpl.Name),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown incomplete", zap.Error(err))
		}
	}
}

func loadTemplate(cfg common.TemplateConfig) (*template.Descriptor, error) {
	if cfg.Path == "" {
		return template.TRACES(), nil
	}
	return template.Load(cfg.Path)
}
