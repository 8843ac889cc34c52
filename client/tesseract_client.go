package client

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/Aashish23092/drive-decision/dto"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	dataPath  string
	languages []string
}

func NewTesseractClient(dataPath string, languages []string) *TesseractClient {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractClient{
		dataPath:  dataPath,
		languages: languages,
	}
}

// RecognizeLines runs Tesseract over a full frame and returns one entry per
// text line with its bounding box.
func (tc *TesseractClient) RecognizeLines(ctx context.Context, img image.Image) ([]dto.OCRLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := tc.newClient(img, gosseract.PSM_AUTO)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("failed to get line boxes: %w", err)
	}

	lines := make([]dto.OCRLine, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		lines = append(lines, dto.OCRLine{Text: text, Rect: box.Box})
	}

	log.Printf("Tesseract recognized %d lines", len(lines))
	return lines, nil
}

// RecognizeText reads a small crop as a single block of text.
func (tc *TesseractClient) RecognizeText(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client, err := tc.newClient(img, gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}

func (tc *TesseractClient) newClient(img image.Image, mode gosseract.PageSegMode) (*gosseract.Client, error) {
	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(mode); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
