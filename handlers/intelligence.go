package handlers

import (
	"fmt"
	"io"
	"net/http"

	"lexaid/models"
	"lexaid/services/intelligence"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AIHandler struct {
	AI          intelligence.AIService
	Transcriber intelligence.Transcriber
}

// Draft handles POST /api/ai/draft.
func (h *AIHandler) Draft(c *gin.Context) {
	var req models.DraftRequest
	if !bindJSON(c, &req) {
		return
	}
	if h.AI == nil {
		utils.RespondError(c, fmt.Errorf("generative model: %w", utils.ErrServiceUnavailable))
		return
	}
	resp, err := h.AI.DraftDocument(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Citations handles POST /api/ai/citations.
func (h *AIHandler) Citations(c *gin.Context) {
	var req models.CitationRequest
	if !bindJSON(c, &req) {
		return
	}
	if h.AI == nil {
		utils.RespondError(c, fmt.Errorf("generative model: %w", utils.ErrServiceUnavailable))
		return
	}
	resp, err := h.AI.SuggestCitations(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Transcribe handles POST /api/ai/transcribe with a multipart "audio" WAV
// file and an optional "language" field.
func (h *AIHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("audio", "audio file is required"))
		return
	}
	defer file.Close()
	if header.Size > utils.MaxAudioUploadBytes {
		utils.RespondError(c, utils.NewValidationError("audio", "file exceeds 5MB"))
		return
	}

	audio, err := io.ReadAll(io.LimitReader(file, utils.MaxAudioUploadBytes+1))
	if err != nil {
		utils.RespondError(c, fmt.Errorf("read audio: %w", err))
		return
	}
	if h.Transcriber == nil {
		utils.RespondError(c, fmt.Errorf("speech recognition: %w", utils.ErrServiceUnavailable))
		return
	}

	transcript, err := h.Transcriber.Transcribe(c.Request.Context(), audio, c.PostForm("language"))
	if err != nil {
		utils.GetLogger().Warn("Transcription failed", zap.String("file", header.Filename), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TranscriptionResponse{Transcript: transcript})
}
