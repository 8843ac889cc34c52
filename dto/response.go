package dto

import "errors"

// Custom errors
var (
	ErrEmptyAnalyzeRequest    = errors.New("accessibility text, OCR lines or a frame is required")
	ErrUnsupportedFrameFormat = errors.New("unsupported raw frame format")
	ErrBusy                   = errors.New("analysis already in progress")
	ErrNoCandidates           = errors.New("no time-distance reading found, need clearer capture")
	ErrSegmentationFailed     = errors.New("colored boxes not found")
	ErrRecognitionTimeout     = errors.New("text recognition timed out")
	ErrNoRecognizer           = errors.New("no OCR engine configured")
	ErrInvalidFrame           = errors.New("frame could not be read")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AnalyzeResponse is the final response structure
type AnalyzeResponse struct {
	RunID          string           `json:"run_id"`
	Strategy       string           `json:"strategy,omitempty"`
	SourceApp      string           `json:"source_app,omitempty"`
	Estimate       *TripEstimate    `json:"estimate,omitempty"`
	Candidates     []TDCandidate    `json:"candidates"`
	Boxes          []BoxReading     `json:"boxes,omitempty"`
	Offers         []Offer          `json:"offers"`
	Fare           *FareBreakdown   `json:"fare,omitempty"`
	Metrics        []OfferMetrics   `json:"metrics"`
	Recommendation Recommendation   `json:"recommendation"`
	Settings       SettingsSnapshot `json:"settings"`
	Warnings       []string         `json:"warnings,omitempty"`
	Report         string           `json:"report"`
	ProcessedAt    string           `json:"processed_at"`
}
