package dto

import (
	"errors"
	"mime/multipart"
	"strings"
)

// Raw frame pixel layouts accepted for the bitmap input.
const (
	FrameFormatRGBA = "rgba"
	FrameFormatI420 = "i420"
	FrameFormatNV21 = "nv21"
)

// RawFrame is an unencoded capture buffer with its geometry.
type RawFrame struct {
	Format string
	Width  int
	Height int
	Stride int
	Data   []byte
}

// AnalyzeRequest is the incoming analysis request
type AnalyzeRequest struct {
	AccessibilityText string                `form:"accessibility_text"`
	OCRLines          []OCRLine             `form:"-"`
	Frame             *multipart.FileHeader `form:"frame"`
	Raw               *RawFrame             `form:"-"`
	Settings          *SettingsSnapshot     `form:"-"`
}

// HasBitmap reports whether any image input is attached.
func (r *AnalyzeRequest) HasBitmap() bool {
	return r.Frame != nil || r.Raw != nil
}

// Validate performs basic validation on the request
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.AccessibilityText) == "" && len(r.OCRLines) == 0 && !r.HasBitmap() {
		return ErrEmptyAnalyzeRequest
	}
	if r.Raw != nil {
		if r.Raw.Width <= 0 || r.Raw.Height <= 0 {
			return errors.New("raw frame width and height must be positive")
		}
		switch r.Raw.Format {
		case FrameFormatRGBA, FrameFormatI420, FrameFormatNV21:
		default:
			return ErrUnsupportedFrameFormat
		}
	}
	return nil
}

// AnalyzeInput is what the analysis pipeline consumes once uploads are decoded.
type AnalyzeInput struct {
	AccessibilityText string
	OCRLines          []OCRLine
	Frame             []byte
	Raw               *RawFrame
	Settings          SettingsSnapshot
}
