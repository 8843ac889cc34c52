package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Aashish23092/drive-decision/dto"
)

const DefaultPaddleURL = "http://paddleocr:8866/predict/ocr_system"

// PaddleClient calls a PaddleOCR serving endpoint over HTTP.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
	retry      RetryConfig
}

// NewPaddleClient creates a PaddleOCR HTTP client
func NewPaddleClient(apiURL string) *PaddleClient {
	if apiURL == "" {
		apiURL = DefaultPaddleURL
	}
	log.Printf("PaddleOCR engine at %s", apiURL)

	return &PaddleClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry:      DefaultRetryConfig(),
	}
}

type paddleLine struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	TextRegion [][2]int `json:"text_region"`
}

type paddleResponse struct {
	Msg     string         `json:"msg"`
	Status  string         `json:"status"`
	Results [][]paddleLine `json:"results"`
}

// RecognizeLines sends the frame to PaddleOCR and returns the detected
// lines with the bounding box of each text region.
func (p *PaddleClient) RecognizeLines(ctx context.Context, img image.Image) ([]dto.OCRLine, error) {
	results, err := p.predict(ctx, img)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.OCRLine, 0, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		lines = append(lines, dto.OCRLine{Text: text, Rect: regionBounds(r.TextRegion)})
	}

	log.Printf("PaddleOCR recognized %d lines", len(lines))
	return lines, nil
}

// RecognizeText returns the text of a crop, one detected line per row.
func (p *PaddleClient) RecognizeText(ctx context.Context, img image.Image) (string, error) {
	results, err := p.predict(ctx, img)
	if err != nil {
		return "", err
	}

	var textBuilder strings.Builder
	for _, r := range results {
		textBuilder.WriteString(r.Text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func (p *PaddleClient) predict(ctx context.Context, img image.Image) ([]paddleLine, error) {
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	payloadBytes, err := json.Marshal(map[string]any{
		"images": []string{base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	var result paddleResponse
	err = Retry(ctx, p.retry, func() error {
		result = paddleResponse{}
		return p.post(ctx, payloadBytes, &result)
	})
	if err != nil {
		return nil, fmt.Errorf("PaddleOCR request failed: %w", err)
	}

	if len(result.Results) == 0 {
		return nil, nil
	}
	return result.Results[0], nil
}

func (p *PaddleClient) post(ctx context.Context, payload []byte, out *paddleResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}
	return nil
}

// regionBounds reduces a quadrilateral text region to its bounding rectangle.
func regionBounds(points [][2]int) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(points[0][0], points[0][1], points[0][0], points[0][1])
	for _, pt := range points[1:] {
		r.Min.X = min(r.Min.X, pt[0])
		r.Min.Y = min(r.Min.Y, pt[1])
		r.Max.X = max(r.Max.X, pt[0])
		r.Max.Y = max(r.Max.Y, pt[1])
	}
	return r
}
