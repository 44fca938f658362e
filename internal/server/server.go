// Package server is the presentation shim over the scan pipeline: one
// upload endpoint returning the compliance report as JSON or XLSX. It owns
// no state and persists nothing.
package server

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/veripura/certscan/constants"
	"github.com/veripura/certscan/internal/common"
	"github.com/veripura/certscan/internal/export"
	"github.com/veripura/certscan/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	app    *fiber.App
	proc   *pipeline.Processor
	cfg    common.ServerConfig
	logger *zap.Logger
}

func New(cfg common.ServerConfig, gate common.GateConfig, proc *pipeline.Processor, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:   "certscan",
		BodyLimit: cfg.BodyLimit,
	})

	s := &Server{app: app, proc: proc, cfg: cfg, logger: logger}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", walletGate(gate, logger))
	api.Post("/scan", s.handleScan)

	return s
}

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

func (s *Server) handleScan(c *fiber.Ctx) error {
	start := time.Now()

	fh, err := c.FormFile("document")
	if err != nil {
		scansTotal.WithLabelValues("rejected").Inc()
		return fiber.NewError(fiber.StatusBadRequest, "multipart field 'document' is required")
	}
	ext := filepath.Ext(fh.Filename)
	if !constants.IsAllowedExt(ext) {
		scansTotal.WithLabelValues("rejected").Inc()
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "unsupported document type")
	}

	tmpDir, err := os.MkdirTemp("", "cs-upload-*")
	if err != nil {
		scansTotal.WithLabelValues("error").Inc()
		return fiber.NewError(fiber.StatusInternalServerError, "cannot stage upload")
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "document"+strings.ToLower(ext))
	if err := c.SaveFile(fh, path); err != nil {
		scansTotal.WithLabelValues("error").Inc()
		return fiber.NewError(fiber.StatusInternalServerError, "cannot stage upload")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.ScanTimeout)
	defer cancel()

	res, err := s.proc.ScanFile(ctx, path)
	scanDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrUnsupported) {
			scansTotal.WithLabelValues("rejected").Inc()
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		scansTotal.WithLabelValues("error").Inc()
		s.logger.Error("scan failed", zap.String("filename", fh.Filename), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "scan failed")
	}

	status := "fail"
	if res.Report.Passed {
		status = "pass"
	}
	scansTotal.WithLabelValues(status).Inc()
	s.logger.Info("scan complete",
		zap.String("scan_id", res.ID.String()),
		zap.Int("score", res.Report.Score),
		zap.Bool("passed", res.Report.Passed),
		zap.Int64("elapsed_ms", res.DurationMS),
	)

	if wantsXLSX(c) {
		data, err := export.BuildReportXLSX(res, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "export failed")
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="compliance-`+res.ID.String()+`.xlsx"`)
		return c.Send(data)
	}
	return c.JSON(res)
}

func wantsXLSX(c *fiber.Ctx) bool {
	if c.Query("format") == "xlsx" {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), xlsxContentType)
}
