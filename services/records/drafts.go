package records

import (
	"context"
	"fmt"
	"strings"

	draftRepo "lexaid/database/repository/draft"
	caseRepo "lexaid/database/repository/legalcase"
	"lexaid/models"
	"lexaid/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDraftService stores drafts. Cases is optional and only used to
// unlink deleted drafts.
type DefaultDraftService struct {
	Drafts draftRepo.DraftRepository
	Cases  caseRepo.CaseRepository
}

func (s *DefaultDraftService) repo() (draftRepo.DraftRepository, error) {
	if s == nil || s.Drafts == nil {
		return nil, fmt.Errorf("drafts: %w", utils.ErrServiceUnavailable)
	}
	return s.Drafts, nil
}

func (s *DefaultDraftService) CreateDraft(ctx context.Context, userID string, in models.DraftInput) (*models.Draft, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.NewValidationError("title", "is required")
	}
	if strings.TrimSpace(in.DocumentType) == "" {
		return nil, utils.NewValidationError("documentType", "is required")
	}

	now := utils.Now()
	draft := &models.Draft{
		ID:           uuid.NewString(),
		UserID:       userID,
		DocumentType: in.DocumentType,
		Title:        in.Title,
		Content:      in.Content,
		CreatedAt:    now,
		LastModified: now,
	}
	if err := repo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultDraftService) ListDrafts(ctx context.Context, userID string) ([]models.Draft, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, userID)
}

func (s *DefaultDraftService) GetDraft(ctx context.Context, userID, id string) (*models.Draft, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, userID, id)
}

func (s *DefaultDraftService) UpdateDraft(ctx context.Context, userID, id string, patch models.DraftPatch) (*models.Draft, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	draft, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, utils.NewValidationError("title", "cannot be empty")
		}
		draft.Title = *patch.Title
	}
	if patch.DocumentType != nil {
		draft.DocumentType = *patch.DocumentType
	}
	if patch.Content != nil {
		draft.Content = *patch.Content
	}
	draft.LastModified = utils.NextModified(draft.LastModified)

	if err := repo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// DeleteDraft removes the draft, then drops it from the owner's cases.
// The second step is best-effort; a failure there is logged, not returned.
func (s *DefaultDraftService) DeleteDraft(ctx context.Context, userID, id string) error {
	repo, err := s.repo()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if s.Cases != nil {
		if _, err := s.Cases.PullDocumentFromAll(ctx, userID, id, utils.Now()); err != nil {
			utils.GetLogger().Warn("Failed to unlink deleted draft from cases",
				zap.String("userID", userID), zap.String("draftID", id), zap.Error(err))
		}
	}
	return nil
}
