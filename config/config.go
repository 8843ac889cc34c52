package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// OCR engine names accepted in OCR_ENGINE.
const (
	EngineTesseract = "tesseract"
	EnginePaddle    = "paddle"
)

type Config struct {
	ServerPort         string
	TesseractDataPath  string
	OCRLanguages       []string
	OCREngine          string
	PaddleAPIURL       string
	RecognitionTimeout time.Duration
	SettingsPath       string
	MaxFileSize        int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	languages := strings.Split(envOr("OCR_LANGUAGES", "spa+eng"), "+")

	engine := strings.ToLower(envOr("OCR_ENGINE", EngineTesseract))
	if engine != EnginePaddle {
		engine = EngineTesseract
	}

	return &Config{
		ServerPort:         serverPort,
		TesseractDataPath:  tesseractDataPath,
		OCRLanguages:       languages,
		OCREngine:          engine,
		PaddleAPIURL:       os.Getenv("PADDLEOCR_API_URL"),
		RecognitionTimeout: time.Duration(envInt("RECOGNITION_TIMEOUT_MS", 1500)) * time.Millisecond,
		SettingsPath:       envOr("SETTINGS_PATH", "settings.yaml"),
		MaxFileSize:        envInt("MAX_FILE_SIZE", 10*1024*1024), // 10 MB
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
