package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Aashish23092/drive-decision/config"
	"github.com/Aashish23092/drive-decision/dto"
	"github.com/Aashish23092/drive-decision/service"

	"github.com/gin-gonic/gin"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
	settingsStore   *config.SettingsStore
	maxFileSize     int64
}

func NewAnalysisHandler(analysisService *service.AnalysisService, settingsStore *config.SettingsStore, maxFileSize int64) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		settingsStore:   settingsStore,
		maxFileSize:     maxFileSize,
	}
}

// Analyze handles the POST /analyze endpoint
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	log.Println("Received analysis request")

	request, err := h.bindRequest(c)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid analysis request", err)
		return
	}

	// Validate request
	if err := request.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	input, err := h.buildInput(request)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Failed to read frame", err)
		return
	}

	response, err := h.analysisService.Analyze(c.Request.Context(), input)
	if err != nil {
		sendError(c, statusFor(err), "Failed to analyze capture", err)
		return
	}

	log.Printf("Analysis %s completed: %s", response.RunID, response.Recommendation.Decision)
	c.JSON(http.StatusOK, response)
}

// bindRequest reads the form fields. Settings sent with the request override
// the stored ones field by field.
func (h *AnalysisHandler) bindRequest(c *gin.Context) (*dto.AnalyzeRequest, error) {
	request := &dto.AnalyzeRequest{
		AccessibilityText: c.PostForm("accessibility_text"),
	}

	if raw := c.PostForm("ocr_lines"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &request.OCRLines); err != nil {
			return nil, fmt.Errorf("invalid ocr_lines JSON: %w", err)
		}
	}

	settings := h.settingsStore.Snapshot()
	if raw := c.PostForm("settings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			return nil, fmt.Errorf("invalid settings JSON: %w", err)
		}
	}
	request.Settings = &settings

	if file, err := c.FormFile("frame"); err == nil {
		request.Frame = file
	}

	if file, err := c.FormFile("raw"); err == nil {
		data, err := readUpload(file, h.maxFileSize)
		if err != nil {
			return nil, err
		}
		request.Raw = &dto.RawFrame{
			Format: c.PostForm("raw_format"),
			Width:  formInt(c, "raw_width"),
			Height: formInt(c, "raw_height"),
			Stride: formInt(c, "raw_stride"),
			Data:   data,
		}
	}

	return request, nil
}

func (h *AnalysisHandler) buildInput(request *dto.AnalyzeRequest) (*dto.AnalyzeInput, error) {
	input := &dto.AnalyzeInput{
		AccessibilityText: request.AccessibilityText,
		OCRLines:          request.OCRLines,
		Raw:               request.Raw,
		Settings:          *request.Settings,
	}
	if request.Frame != nil {
		data, err := readUpload(request.Frame, h.maxFileSize)
		if err != nil {
			return nil, err
		}
		input.Frame = data
	}
	return input, nil
}

func readUpload(file *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && file.Size > maxSize {
		return nil, fmt.Errorf("file %s exceeds %d bytes", file.Filename, maxSize)
	}
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", file.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", file.Filename, err)
	}
	return data, nil
}

func formInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.PostForm(key))
	return v
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dto.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, dto.ErrInvalidFrame),
		errors.Is(err, dto.ErrUnsupportedFrameFormat),
		errors.Is(err, dto.ErrEmptyAnalyzeRequest):
		return http.StatusBadRequest
	case errors.Is(err, dto.ErrRecognitionTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, dto.ErrNoRecognizer):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   errorCode(statusCode),
		Message: errorMsg,
		Code:    statusCode,
	})
}

func errorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusConflict:
		return "ANALYSIS_BUSY"
	case http.StatusGatewayTimeout:
		return "RECOGNITION_TIMEOUT"
	case http.StatusServiceUnavailable:
		return "ENGINE_UNAVAILABLE"
	case http.StatusInternalServerError:
		return "INTERNAL_ERROR"
	}
	return "ANALYSIS_FAILED"
}
