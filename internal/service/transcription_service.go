package service

import (
	"context"
	"fmt"
	"strings"

	"commons/internal/models"
	"commons/internal/transcription"
)

type TranscriptionService struct {
	transcriber transcription.Transcriber
}

func NewTranscriptionService(t transcription.Transcriber) *TranscriptionService {
	return &TranscriptionService{transcriber: t}
}

// Transcribe decodes a base64 audio data URL and returns its text.
func (s *TranscriptionService) Transcribe(ctx context.Context, dataURL string) (string, error) {
	if strings.TrimSpace(dataURL) == "" {
		return "", models.NewValidationError("Audio data is required")
	}
	audio, err := transcription.DecodeDataURL(dataURL)
	if err != nil {
		return "", models.NewValidationError("Audio must be a base64 data URL")
	}

	text, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribe %d bytes: %w", len(audio), err)
	}
	return text, nil
}
