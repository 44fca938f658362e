package recognize

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout []byte
	err    error
	calls  int
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls++
	return s.stdout, nil, s.err
}

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t1000\t1500\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t10\t18\t200\t16\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t20\t60\t12\t91\tDocument\n" +
	"5\t1\t1\t1\t1\t2\t80\t22\t40\t12\t89\tNo.\n" +
	"5\t1\t1\t1\t2\t1\t10\t60\t70\t12\t75\tOperator\n" +
	"5\t1\t2\t1\t1\t1\t10\t400\t30\t12\t-1\t###\n"

func TestTesseractCLI_GroupsWordsIntoLines(t *testing.T) {
	runner := &stubRunner{stdout: []byte(sampleTSV)}
	eng := NewTesseractCLI("tesseract", "", 0, 0, nil)
	eng.Runner = runner

	lines, err := eng.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 10, 10)), []string{"eng"})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, Line{Text: "Document No.", TopY: 20, Confidence: 90}, lines[0])
	assert.Equal(t, Line{Text: "Operator", TopY: 60, Confidence: 75}, lines[1])
	assert.Equal(t, Line{Text: "###", TopY: 400, Confidence: ConfidenceAbsent}, lines[2])
	assert.Equal(t, 1, runner.calls)
}

func TestTesseractCLI_PropagatesEngineError(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	eng := NewTesseractCLI("", "", 0, 0, nil)
	eng.Runner = runner

	_, err := eng.Recognize(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)), []string{"eng"})
	require.Error(t, err)
}

func TestText_PreservesReadingOrder(t *testing.T) {
	lines := []Line{{Text: "first"}, {Text: "second"}}
	assert.Equal(t, "first\nsecond\n", Text(lines))
}

func TestMeanConfidence(t *testing.T) {
	assert.InDelta(t, 80.0, MeanConfidence([]Line{
		{Confidence: 90}, {Confidence: 70}, {Confidence: ConfidenceAbsent},
	}), 0.001)
	assert.EqualValues(t, ConfidenceAbsent, MeanConfidence([]Line{{Confidence: ConfidenceAbsent}}))
	assert.EqualValues(t, ConfidenceAbsent, MeanConfidence(nil))
}
