// Package export renders a scan result as an XLSX workbook for download.
// Nothing is persisted; the workbook exists only as response bytes.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/veripura/certscan/internal/pipeline"
)

// BuildReportXLSX returns an XLSX workbook (as bytes) for one scan result:
// a summary block, one row per rubric check, and the recovered products.
func BuildReportXLSX(res pipeline.ScanResult, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Compliance"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	verdict := "FAIL"
	if res.Report.Passed {
		verdict = "PASS"
	}
	write(1, 1, "Scan ID")
	write(2, 1, res.ID.String())
	write(1, 2, "Verdict")
	write(2, 2, fmt.Sprintf("%s: %d/%d", verdict, res.Report.Score, res.Report.Total))
	write(1, 3, "Risk")
	write(2, 3, res.Forensic.Risk)

	row := 5
	headers := []string{"#", "Check", "Status", "Note"}
	for i, h := range headers {
		write(i+1, row, h)
	}
	row++
	for i, d := range res.Report.Details {
		write(1, row, i+1)
		write(2, row, d.Label)
		write(3, row, string(d.Status))
		write(4, row, truncate(d.Note, 140))
		row++
	}

	row++
	write(1, row, "Certified products")
	row++
	for _, p := range res.Report.Products {
		write(2, row, strings.Trim(p, "*"))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	_ = f.SetColWidth(sheet, "C", "C", 10)
	_ = f.SetColWidth(sheet, "D", "D", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("export.xlsx.ok",
		"scan_id", res.ID.String(),
		"checks", len(res.Report.Details),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
