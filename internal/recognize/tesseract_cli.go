package recognize

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/veripura/certscan/internal/execx"
)

// TesseractCLI recognizes text by shelling out to the tesseract binary in
// TSV mode, which carries per-word geometry and confidence.
type TesseractCLI struct {
	Binary      string // binary name or absolute path; if empty -> "tesseract"
	TessdataDir string
	PSM         int // e.g., 6 is good for uniform block of text
	OEM         int // 1 = LSTM; leave 0 to use default

	Runner execx.Runner
	Logger *slog.Logger
}

func NewTesseractCLI(binary, tessdataDir string, psm, oem int, logger *slog.Logger) *TesseractCLI {
	if binary == "" {
		binary = "tesseract"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TesseractCLI{Binary: binary, TessdataDir: tessdataDir, PSM: psm, OEM: oem, Runner: execx.ExecRunner{}, Logger: logger}
}

func (t *TesseractCLI) Recognize(ctx context.Context, img image.Image, languages []string) ([]Line, error) {
	tmpDir, err := os.MkdirTemp("", "cs-ocr-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "region.png")
	f, err := os.Create(in)
	if err != nil {
		return nil, err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, fmt.Errorf("encode region: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	args := []string{in, "stdout", "-l", strings.Join(languages, "+")}
	if t.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.PSM))
	}
	if t.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(t.OEM))
	}
	if t.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.TessdataDir)
	}
	args = append(args, "tsv")

	out, errb, err := t.Runner.Run(ctx, t.Binary, args...)
	if err != nil {
		return nil, fmt.Errorf("tesseract TSV: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	return parseTSVLines(string(out)), nil
}

// parseTSVLines folds tesseract's word-level TSV rows back into text lines.
// Columns: level page block par line word left top width height conf text.
func parseTSVLines(tsv string) []Line {
	type acc struct {
		key   string
		top   int
		words []string
		conf  float64
		n     int
	}
	var lines []Line
	var cur *acc

	flush := func() {
		if cur == nil || len(cur.words) == 0 {
			cur = nil
			return
		}
		conf := ConfidenceAbsent
		if cur.n > 0 {
			conf = int(math.Round(cur.conf / float64(cur.n)))
		}
		lines = append(lines, Line{
			Text:       strings.Join(cur.words, " "),
			TopY:       cur.top,
			Confidence: conf,
		})
		cur = nil
	}

	for i, row := range strings.Split(tsv, "\n") {
		if i == 0 || row == "" { // skip header
			continue
		}
		cols := strings.Split(row, "\t")
		if len(cols) < 12 { // defensive
			continue
		}
		level, _ := strconv.Atoi(cols[0])
		if level != 5 { // words only; line rows carry no text
			continue
		}
		key := cols[2] + "-" + cols[3] + "-" + cols[4] // block-par-line
		top, _ := strconv.Atoi(cols[7])
		text := strings.TrimSpace(strings.Join(cols[11:], "\t"))
		if text == "" {
			continue
		}

		if cur == nil || cur.key != key {
			flush()
			cur = &acc{key: key, top: top}
		}
		if top < cur.top {
			cur.top = top
		}
		cur.words = append(cur.words, text)
		if c, err := strconv.ParseFloat(cols[10], 64); err == nil && c >= 0 {
			cur.conf += c
			cur.n++
		}
	}
	flush()
	return lines
}
