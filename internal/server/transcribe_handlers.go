package server

import (
	"github.com/gofiber/fiber/v2"
)

// TranscribeRequest carries a recording as a base64 data URL.
type TranscribeRequest struct {
	Audio string `json:"audio"`
}

// TranscribeResponse is the recognized text.
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

// Transcribe handles POST /api/transcribe
// @Summary Transcribe audio
// @Description Sends a recorded discussion to the speech-to-text provider
// @Tags discussions
// @Accept json
// @Produce json
// @Param request body TranscribeRequest true "Audio data URL"
// @Success 200 {object} TranscribeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transcribe [post]
func (s *Server) Transcribe(c *fiber.Ctx) error {
	var req TranscribeRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	text, err := s.transcriptionService.Transcribe(c.UserContext(), req.Audio)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(TranscribeResponse{Transcription: text})
}
