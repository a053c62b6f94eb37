package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexaid/models"
	"lexaid/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// AIService is the drafting model boundary used by the HTTP layer and the
// drafting workspace.
type AIService interface {
	DraftDocument(ctx context.Context, req models.DraftRequest) (*models.DraftResponse, error)
	SuggestCitations(ctx context.Context, req models.CitationRequest) (*models.CitationResponse, error)
}

// DefaultAIService renders prompts and decodes the model's JSON answers.
// Each operation is a single attempt.
type DefaultAIService struct {
	Gen     Generator
	Timeout time.Duration
}

func NewAIService(gen Generator, timeout time.Duration) *DefaultAIService {
	return &DefaultAIService{Gen: gen, Timeout: timeout}
}

func (s *DefaultAIService) call(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	if s == nil || s.Gen == nil {
		return fmt.Errorf("generative model: %w", utils.ErrServiceUnavailable)
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := s.Gen.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		return &utils.RemoteError{Service: "gemini", Err: err}
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), out); err != nil {
		utils.GetLogger().Warn("Malformed model output", zap.Int("length", len(raw)), zap.Error(err))
		return &utils.RemoteError{Service: "gemini", Err: fmt.Errorf("malformed model output: %w", err)}
	}
	return nil
}

func (s *DefaultAIService) DraftDocument(ctx context.Context, req models.DraftRequest) (*models.DraftResponse, error) {
	if strings.TrimSpace(req.DocumentType) == "" {
		return nil, utils.NewValidationError("documentType", "is required")
	}
	prompt, err := RenderDraftPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("render draft prompt: %w", err)
	}

	var out struct {
		DraftDocument *string `json:"draftDocument"`
	}
	if err := s.call(ctx, prompt, draftSchema, &out); err != nil {
		return nil, err
	}
	if out.DraftDocument == nil {
		return nil, &utils.RemoteError{Service: "gemini", Err: errors.New("model output has no draftDocument")}
	}
	return &models.DraftResponse{DraftDocument: *out.DraftDocument}, nil
}

// SuggestCitations returns the model's citations in the order given, each
// trimmed of surrounding whitespace. Blank entries are dropped. An empty list
// is a valid answer.
func (s *DefaultAIService) SuggestCitations(ctx context.Context, req models.CitationRequest) (*models.CitationResponse, error) {
	if strings.TrimSpace(req.DocumentContent) == "" {
		return nil, utils.NewValidationError("documentContent", "is required")
	}
	prompt, err := RenderCitationPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("render citation prompt: %w", err)
	}

	var out struct {
		Citations *[]string `json:"citations"`
	}
	if err := s.call(ctx, prompt, citationSchema, &out); err != nil {
		return nil, err
	}
	if out.Citations == nil {
		return nil, &utils.RemoteError{Service: "gemini", Err: errors.New("model output has no citations")}
	}
	citations := make([]string, 0, len(*out.Citations))
	for _, c := range *out.Citations {
		if c = strings.TrimSpace(c); c != "" {
			citations = append(citations, c)
		}
	}
	return &models.CitationResponse{Citations: citations}, nil
}
