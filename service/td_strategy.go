package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/Aashish23092/drive-decision/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// Strategy names reported in responses and logs.
const (
	StrategyLines    = "lines"
	StrategyColorBox = "color_box"
)

const (
	cropMinHeight = 96
	cropContrast  = 20
)

// TextRecognizer is the OCR engine as seen by the extraction strategies.
type TextRecognizer interface {
	// RecognizeLines returns text lines with boxes in image pixels.
	RecognizeLines(ctx context.Context, img image.Image) ([]dto.OCRLine, error)
	// RecognizeText returns the plain text of a small crop.
	RecognizeText(ctx context.Context, img image.Image) (string, error)
}

// TDInput is what a strategy may work from. Either field can be empty.
type TDInput struct {
	Lines []dto.OCRLine
	Image image.Image
}

// TDOutcome is the result of one extraction.
type TDOutcome struct {
	Strategy  string
	Selection *LegSelection
	Boxes     []dto.BoxReading
	Warnings  []string
}

// TDStrategy extracts time-distance legs from one kind of input.
type TDStrategy interface {
	Name() string
	Extract(ctx context.Context, in TDInput) (*TDOutcome, error)
}

// LineStrategy works from line-boxed OCR output. When only a bitmap is
// given it recognizes the full frame first.
type LineStrategy struct {
	Recognizer TextRecognizer
	// Timeout bounds each engine call.
	Timeout time.Duration
}

// NewLineStrategy creates a line strategy. recognizer may be nil when
// callers always supply lines.
func NewLineStrategy(recognizer TextRecognizer) *LineStrategy {
	return &LineStrategy{Recognizer: recognizer, Timeout: DefaultRecognitionTimeout}
}

func (s *LineStrategy) Name() string { return StrategyLines }

// Extract runs tokens, candidates, dedup and leg selection. A run with no
// candidates returns the outcome together with dto.ErrNoCandidates.
func (s *LineStrategy) Extract(ctx context.Context, in TDInput) (*TDOutcome, error) {
	out := &TDOutcome{Strategy: s.Name()}

	lines := in.Lines
	if len(lines) == 0 && in.Image != nil {
		if s.Recognizer == nil {
			return out, dto.ErrNoRecognizer
		}
		recognized, err := awaitRecognition(ctx, s.Timeout, func(ctx context.Context) ([]dto.OCRLine, error) {
			return s.Recognizer.RecognizeLines(ctx, in.Image)
		})
		if err != nil {
			return out, fmt.Errorf("full-frame recognition failed: %w", err)
		}
		lines = recognized
	}

	candidates := DedupeCandidates(BuildCandidates(BuildTokens(lines)))
	sel, err := SelectLegs(candidates)
	if err != nil {
		return out, err
	}
	out.Selection = sel
	return out, nil
}

// ColorBoxStrategy reads the blue and green boxes of a bitmap for display
// and takes the legs from full-frame line recognition. Crops and the full
// frame are recognized concurrently, each under its own timeout.
type ColorBoxStrategy struct {
	Segmenter  *RegionSegmenter
	Recognizer TextRecognizer
	Lines      *LineStrategy
	Timeout    time.Duration
}

// NewColorBoxStrategy wires the box strategy around one recognizer.
func NewColorBoxStrategy(recognizer TextRecognizer) *ColorBoxStrategy {
	return &ColorBoxStrategy{
		Segmenter:  NewRegionSegmenter(),
		Recognizer: recognizer,
		Lines:      NewLineStrategy(recognizer),
		Timeout:    DefaultRecognitionTimeout,
	}
}

func (s *ColorBoxStrategy) Name() string { return StrategyColorBox }

// Extract fails only when the full-frame pass fails. An unreadable box
// becomes a warning.
func (s *ColorBoxStrategy) Extract(ctx context.Context, in TDInput) (*TDOutcome, error) {
	if in.Image == nil {
		return nil, errors.New("color box strategy needs a bitmap")
	}
	if s.Recognizer == nil {
		return &TDOutcome{Strategy: s.Name()}, dto.ErrNoRecognizer
	}

	out := &TDOutcome{Strategy: s.Name()}
	seg, err := s.Segmenter.Segment(in.Image)
	if err != nil {
		log.Printf("Box segmentation incomplete, using full frame: %v", err)
		out.Warnings = append(out.Warnings, "colored boxes not found, legs taken from full-frame recognition")
	}

	regions := seg.Regions()
	readings := make([]*dto.BoxReading, len(regions))
	failures := make([]error, len(regions))
	lineOut := &TDOutcome{}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		lineOut, err = s.Lines.Extract(ctx, TDInput{Image: in.Image})
		return err
	})
	for i, region := range regions {
		g.Go(func() error {
			crop := prepareCrop(in.Image, region.Rect)
			text, err := awaitRecognition(ctx, s.Timeout, func(ctx context.Context) (string, error) {
				return s.Recognizer.RecognizeText(ctx, crop)
			})
			if err != nil {
				failures[i] = err
				return nil
			}
			reading := readBox(region, text)
			readings[i] = &reading
			return nil
		})
	}
	err = g.Wait()

	for i, region := range regions {
		if failures[i] != nil {
			log.Printf("Warning: %s box recognition failed: %v", region.Color, failures[i])
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s box unreadable: %v", region.Color, failures[i]))
			continue
		}
		out.Boxes = append(out.Boxes, *readings[i])
	}

	out.Selection = lineOut.Selection
	out.Warnings = append(out.Warnings, lineOut.Warnings...)
	return out, err
}

func prepareCrop(img image.Image, r image.Rectangle) image.Image {
	crop := imaging.Grayscale(imaging.Crop(img, r))
	crop = imaging.AdjustContrast(crop, cropContrast)
	if h := crop.Bounds().Dy(); h > 0 && h < cropMinHeight {
		crop = imaging.Resize(crop, 0, h*2, imaging.Lanczos)
	}
	return crop
}

func readBox(region ColoredRegion, text string) dto.BoxReading {
	normalized := utils.NormalizeLine(text)
	secs, hasTime := utils.ParseSeconds(normalized)
	meters, hasDist := utils.ParseMeters(normalized)

	timePart, distPart := "?", "?"
	if hasTime {
		timePart = utils.FormatDuration(secs)
	}
	if hasDist {
		distPart = utils.FormatDistance(meters)
	}
	return dto.BoxReading{
		Color:   region.Color,
		Box:     dto.BoxFromRect(region.Rect),
		Text:    normalized,
		Display: timePart + " | " + distPart,
		TD:      dto.TimeDistance{Seconds: secs, Meters: meters},
	}
}

// awaitRecognition abandons a blocking engine call once ctx is done or,
// when timeout is positive, once timeout has elapsed.
func awaitRecognition[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, dto.ErrRecognitionTimeout
		}
		return zero, ctx.Err()
	}
}
