package service

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecognizer returns canned output after delay. When release is set,
// calls block until it is closed; entered is signalled once on the first call.
type stubRecognizer struct {
	lines     []dto.OCRLine
	text      string
	err       error
	textErr   error
	delay     time.Duration
	release   chan struct{}
	entered   chan struct{}
	once      sync.Once
	lineCalls atomic.Int32
	textCalls atomic.Int32
}

func (r *stubRecognizer) wait() {
	if r.entered != nil {
		r.once.Do(func() { close(r.entered) })
	}
	if r.release != nil {
		<-r.release
	}
	time.Sleep(r.delay)
}

func (r *stubRecognizer) RecognizeLines(ctx context.Context, img image.Image) ([]dto.OCRLine, error) {
	r.lineCalls.Add(1)
	r.wait()
	return r.lines, r.err
}

func (r *stubRecognizer) RecognizeText(ctx context.Context, img image.Image) (string, error) {
	r.textCalls.Add(1)
	r.wait()
	if r.textErr != nil {
		return "", r.textErr
	}
	return r.text, r.err
}

func scenarioLines() []dto.OCRLine {
	return []dto.OCRLine{
		line("5 min", 100, 400, 180, 430),
		line("1.2 km", 100, 440, 190, 470),
		line("12 min", 100, 800, 190, 830),
		line("6,0 km", 100, 840, 190, 870),
	}
}

func cardImage() *image.NRGBA {
	canvas := imaging.New(400, 300, white)
	canvas = paint(canvas, cardBlue, image.Rect(40, 40, 160, 100))
	return paint(canvas, cardGreen, image.Rect(220, 40, 340, 100))
}

func TestLineStrategyScenario(t *testing.T) {
	out, err := NewLineStrategy(nil).Extract(context.Background(), TDInput{Lines: scenarioLines()})

	require.NoError(t, err)
	require.NotNil(t, out.Selection)
	assert.Equal(t, StrategyLines, out.Strategy)
	assert.Equal(t, dto.TimeDistance{Seconds: 300, Meters: 1200}, out.Selection.Estimate.Pickup)
	assert.Equal(t, dto.TimeDistance{Seconds: 720, Meters: 6000}, out.Selection.Estimate.Trip)
}

func TestLineStrategyNoCandidates(t *testing.T) {
	out, err := NewLineStrategy(nil).Extract(context.Background(), TDInput{
		Lines: []dto.OCRLine{line("Aceptar por MX$70", 0, 0, 200, 30)},
	})

	assert.ErrorIs(t, err, dto.ErrNoCandidates)
	require.NotNil(t, out)
	assert.Nil(t, out.Selection)
}

func TestLineStrategyRecognizesFrame(t *testing.T) {
	rec := &stubRecognizer{lines: scenarioLines()}

	out, err := NewLineStrategy(rec).Extract(context.Background(), TDInput{Image: imaging.New(10, 10, white)})

	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.lineCalls.Load())
	assert.Equal(t, 7200, out.Selection.Estimate.TotalMeters())
}

func TestLineStrategyWithoutRecognizer(t *testing.T) {
	_, err := NewLineStrategy(nil).Extract(context.Background(), TDInput{Image: imaging.New(10, 10, white)})
	assert.ErrorIs(t, err, dto.ErrNoRecognizer)
}

func TestColorBoxStrategyReadsBoxes(t *testing.T) {
	rec := &stubRecognizer{lines: scenarioLines(), text: "12 m1n 6,0 km"}

	out, err := NewColorBoxStrategy(rec).Extract(context.Background(), TDInput{Image: cardImage()})

	require.NoError(t, err)
	assert.Equal(t, StrategyColorBox, out.Strategy)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, int32(2), rec.textCalls.Load())

	require.Len(t, out.Boxes, 2)
	assert.Equal(t, ColorBlue, out.Boxes[0].Color)
	assert.Equal(t, ColorGreen, out.Boxes[1].Color)
	assert.Equal(t, dto.LineBox{Left: 32, Top: 32, Right: 168, Bottom: 108}, out.Boxes[0].Box)
	assert.Equal(t, "12 min | 6.0 km", out.Boxes[0].Display)
	assert.Equal(t, dto.TimeDistance{Seconds: 720, Meters: 6000}, out.Boxes[1].TD)

	// box readings are display only, legs come from the full frame
	require.NotNil(t, out.Selection)
	assert.Len(t, out.Selection.Candidates, 2)
	assert.Equal(t, 300, out.Selection.Estimate.Pickup.Seconds)
}

func TestColorBoxStrategyFallsBackWithoutBoxes(t *testing.T) {
	rec := &stubRecognizer{lines: scenarioLines(), text: "unused"}

	out, err := NewColorBoxStrategy(rec).Extract(context.Background(), TDInput{Image: imaging.New(200, 200, white)})

	require.NoError(t, err)
	assert.Empty(t, out.Boxes)
	assert.Zero(t, rec.textCalls.Load())
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "full-frame")
	assert.Equal(t, 6000, out.Selection.Estimate.Trip.Meters)
}

func TestColorBoxStrategyUnreadableBox(t *testing.T) {
	rec := &stubRecognizer{lines: scenarioLines(), text: "###"}

	out, err := NewColorBoxStrategy(rec).Extract(context.Background(), TDInput{Image: cardImage()})

	require.NoError(t, err)
	require.Len(t, out.Boxes, 2)
	assert.Equal(t, "? | ?", out.Boxes[0].Display)
	assert.True(t, out.Boxes[0].TD.IsZero())
}

func TestColorBoxStrategyBoxFailureIsWarning(t *testing.T) {
	rec := &stubRecognizer{lines: scenarioLines(), textErr: errors.New("crop rejected")}

	out, err := NewColorBoxStrategy(rec).Extract(context.Background(), TDInput{Image: cardImage()})

	require.NoError(t, err)
	assert.Empty(t, out.Boxes)
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], "blue box unreadable")
	assert.Contains(t, out.Warnings[1], "green box unreadable")
	require.NotNil(t, out.Selection)
	assert.Equal(t, 6000, out.Selection.Estimate.Trip.Meters)
}

func TestColorBoxStrategyTimeoutIsPerCall(t *testing.T) {
	// each call fits the timeout, the three together would not
	rec := &stubRecognizer{lines: scenarioLines(), text: "12 min 6,0 km", delay: 100 * time.Millisecond}
	strategy := NewColorBoxStrategy(rec)
	strategy.Timeout = 250 * time.Millisecond
	strategy.Lines.Timeout = 250 * time.Millisecond

	out, err := strategy.Extract(context.Background(), TDInput{Image: cardImage()})

	require.NoError(t, err)
	assert.Len(t, out.Boxes, 2)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, 7200, out.Selection.Estimate.TotalMeters())
}

func TestColorBoxStrategyEngineFailure(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("engine down")}

	_, err := NewColorBoxStrategy(rec).Extract(context.Background(), TDInput{Image: cardImage()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine down")
}

func TestAwaitRecognition(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	blocked := func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := awaitRecognition(ctx, 0, blocked)
	assert.ErrorIs(t, err, dto.ErrRecognitionTimeout)

	_, err = awaitRecognition(context.Background(), 10*time.Millisecond, blocked)
	assert.ErrorIs(t, err, dto.ErrRecognitionTimeout)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = awaitRecognition(ctx, time.Second, blocked)
	assert.ErrorIs(t, err, context.Canceled)

	got, err := awaitRecognition(context.Background(), time.Second, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
