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
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const DefaultRecognitionTimeout = 1500 * time.Millisecond

// AnalysisService runs one capture at a time through extraction, fare
// calculation and recommendation.
type AnalysisService struct {
	lines TDStrategy
	boxes TDStrategy
	guard *semaphore.Weighted
}

// NewAnalysisService builds the pipeline around an OCR engine. timeout
// bounds each engine call. recognizer may be nil, in which case only
// requests carrying OCR lines get an estimate.
func NewAnalysisService(recognizer TextRecognizer, timeout time.Duration) *AnalysisService {
	if timeout <= 0 {
		timeout = DefaultRecognitionTimeout
	}
	lines := NewLineStrategy(recognizer)
	lines.Timeout = timeout
	boxes := NewColorBoxStrategy(recognizer)
	boxes.Timeout = timeout
	boxes.Lines.Timeout = timeout

	return &AnalysisService{
		lines: lines,
		boxes: boxes,
		guard: semaphore.NewWeighted(1),
	}
}

// Analyze processes one capture. A request arriving while another is in
// flight fails with dto.ErrBusy instead of queueing.
func (s *AnalysisService) Analyze(ctx context.Context, in *dto.AnalyzeInput) (*dto.AnalyzeResponse, error) {
	if !s.guard.TryAcquire(1) {
		return nil, dto.ErrBusy
	}
	defer s.guard.Release(1)

	runID := uuid.NewString()
	settings := in.Settings.Clamp()
	offers := utils.ParseOffers(in.AccessibilityText)
	log.Printf("[%s] Analysis started: %d OCR lines, %d offers", runID, len(in.OCRLines), len(offers))

	resp := &dto.AnalyzeResponse{
		RunID:       runID,
		SourceApp:   utils.DumpSourceApp(in.AccessibilityText),
		Candidates:  []dto.TDCandidate{},
		Offers:      offers,
		Metrics:     []dto.OfferMetrics{},
		Settings:    settings,
		ProcessedAt: time.Now().Format(time.RFC3339),
	}
	if resp.Offers == nil {
		resp.Offers = []dto.Offer{}
	}

	img, err := loadImage(in)
	if err != nil {
		return nil, err
	}

	strategy := s.pick(in, img)
	if strategy == nil {
		s.insufficient(resp, "no OCR lines or frame provided")
		return resp, nil
	}
	resp.Strategy = strategy.Name()

	outcome, err := strategy.Extract(ctx, TDInput{Lines: in.OCRLines, Image: img})
	if outcome != nil {
		resp.Boxes = outcome.Boxes
		resp.Warnings = append(resp.Warnings, outcome.Warnings...)
	}
	if errors.Is(err, dto.ErrNoCandidates) {
		log.Printf("[%s] No time-distance candidates", runID)
		s.insufficient(resp, err.Error())
		return resp, nil
	}
	if err != nil {
		log.Printf("[%s] Extraction failed: %v", runID, err)
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	sel := outcome.Selection
	resp.Estimate = &sel.Estimate
	resp.Candidates = sel.Candidates
	if sel.Estimate.Degraded() {
		resp.Warnings = append(resp.Warnings, "single leg found, pickup unknown")
	}
	if n := len(sel.Intermediate); n > 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%d intermediate readings ignored", n))
	}

	fare, metrics := CalculateFare(sel.Estimate, settings, offers)
	rec := Recommend(metrics, fare, settings)
	resp.Fare = &fare
	resp.Metrics = metrics
	resp.Recommendation = rec
	resp.Report = RenderReport(sel.Estimate, fare, metrics, rec, settings)

	log.Printf("[%s] Analysis completed: %s", runID, rec.Decision)
	return resp, nil
}

func (s *AnalysisService) pick(in *dto.AnalyzeInput, img image.Image) TDStrategy {
	switch {
	case len(in.OCRLines) > 0:
		return s.lines
	case img != nil:
		return s.boxes
	}
	return nil
}

func (s *AnalysisService) insufficient(resp *dto.AnalyzeResponse, reason string) {
	resp.Recommendation = dto.Recommendation{Decision: dto.DecisionInsufficient, Reason: reason}
	resp.Report = RenderInsufficientReport(reason, resp.Offers)
}

func loadImage(in *dto.AnalyzeInput) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch {
	case len(in.Frame) > 0:
		img, err = DecodeFrame(in.Frame)
	case in.Raw != nil:
		img, err = FrameToImage(in.Raw)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInvalidFrame, err)
	}
	return img, nil
}
