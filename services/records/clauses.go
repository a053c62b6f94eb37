package records

import (
	"context"
	"fmt"
	"strings"

	clauseRepo "lexaid/database/repository/clause"
	"lexaid/models"
	"lexaid/utils"

	"github.com/google/uuid"
)

type DefaultClauseService struct {
	Clauses clauseRepo.ClauseRepository
}

func (s *DefaultClauseService) repo() (clauseRepo.ClauseRepository, error) {
	if s == nil || s.Clauses == nil {
		return nil, fmt.Errorf("clauses: %w", utils.ErrServiceUnavailable)
	}
	return s.Clauses, nil
}

func categoryOrDefault(c string) string {
	if strings.TrimSpace(c) == "" {
		return models.DefaultClauseCategory
	}
	return c
}

func (s *DefaultClauseService) CreateClause(ctx context.Context, userID string, in models.ClauseInput) (*models.Clause, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.NewValidationError("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, utils.NewValidationError("content", "is required")
	}

	now := utils.Now()
	clause := &models.Clause{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        in.Title,
		Content:      in.Content,
		Category:     categoryOrDefault(in.Category),
		CreatedAt:    now,
		LastModified: now,
	}
	if err := repo.Create(ctx, clause); err != nil {
		return nil, err
	}
	return clause, nil
}

func (s *DefaultClauseService) ListClauses(ctx context.Context, userID string) ([]models.Clause, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, userID)
}

func (s *DefaultClauseService) UpdateClause(ctx context.Context, userID, id string, patch models.ClausePatch) (*models.Clause, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	clause, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, utils.NewValidationError("title", "cannot be empty")
		}
		clause.Title = *patch.Title
	}
	if patch.Content != nil {
		clause.Content = *patch.Content
	}
	if patch.Category != nil {
		clause.Category = categoryOrDefault(*patch.Category)
	}
	clause.LastModified = utils.NextModified(clause.LastModified)

	if err := repo.Update(ctx, clause); err != nil {
		return nil, err
	}
	return clause, nil
}

func (s *DefaultClauseService) DeleteClause(ctx context.Context, userID, id string) error {
	repo, err := s.repo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}
