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

// DefaultCaseService stores cases. Drafts is used to check draft ownership
// on link; Reminders is optional.
type DefaultCaseService struct {
	Cases     caseRepo.CaseRepository
	Drafts    draftRepo.DraftRepository
	Reminders HearingScheduler
}

func (s *DefaultCaseService) repo() (caseRepo.CaseRepository, error) {
	if s == nil || s.Cases == nil {
		return nil, fmt.Errorf("cases: %w", utils.ErrServiceUnavailable)
	}
	return s.Cases, nil
}

func validateCase(title string, status models.CaseStatus, priority models.CasePriority) error {
	if strings.TrimSpace(title) == "" {
		return utils.NewValidationError("title", "is required")
	}
	if !status.Valid() {
		return utils.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if !priority.Valid() {
		return utils.NewValidationError("priority", fmt.Sprintf("unknown priority %q", priority))
	}
	return nil
}

// scheduleReminder never fails the case write that triggered it.
func (s *DefaultCaseService) scheduleReminder(ctx context.Context, c *models.Case) {
	if s.Reminders == nil || c.NextAdjournmentDate == nil {
		return
	}
	if err := s.Reminders.ScheduleHearingReminder(ctx, c); err != nil {
		utils.GetLogger().Warn("Failed to schedule hearing reminder",
			zap.String("caseID", c.ID), zap.Error(err))
	}
}

func (s *DefaultCaseService) CreateCase(ctx context.Context, userID string, in models.CaseInput) (*models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.CaseStatusOpen
	}
	if err := validateCase(in.Title, in.Status, in.Priority); err != nil {
		return nil, err
	}

	now := utils.Now()
	c := &models.Case{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Title:               in.Title,
		CaseNumber:          in.CaseNumber,
		Court:               in.Court,
		ClientName:          in.ClientName,
		OpponentName:        in.OpponentName,
		Parties:             in.Parties,
		Status:              in.Status,
		Priority:            in.Priority,
		NextAdjournmentDate: in.NextAdjournmentDate,
		CaseNotes:           in.CaseNotes,
		RelatedDocumentIDs:  []string{},
		CreatedAt:           now,
		LastModified:        now,
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.scheduleReminder(ctx, c)
	return c, nil
}

func (s *DefaultCaseService) ListCases(ctx context.Context, userID string) ([]models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.ListByOwner(ctx, userID)
}

func (s *DefaultCaseService) GetCase(ctx context.Context, userID, id string) (*models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, userID, id)
}

func applyCasePatch(c *models.Case, p models.CasePatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Title, p.Title)
	set(&c.CaseNumber, p.CaseNumber)
	set(&c.Court, p.Court)
	set(&c.ClientName, p.ClientName)
	set(&c.OpponentName, p.OpponentName)
	set(&c.Parties, p.Parties)
	set(&c.CaseNotes, p.CaseNotes)
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	switch {
	case p.ClearNextAdjournmentDate:
		c.NextAdjournmentDate = nil
	case p.NextAdjournmentDate != nil:
		d := *p.NextAdjournmentDate
		c.NextAdjournmentDate = &d
	}
}

func (s *DefaultCaseService) UpdateCase(ctx context.Context, userID, id string, patch models.CasePatch) (*models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	c, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	prevHearing := c.NextAdjournmentDate

	applyCasePatch(c, patch)
	if err := validateCase(c.Title, c.Status, c.Priority); err != nil {
		return nil, err
	}
	c.LastModified = utils.NextModified(c.LastModified)

	if err := repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if c.NextAdjournmentDate != nil && (prevHearing == nil || !prevHearing.Equal(*c.NextAdjournmentDate)) {
		s.scheduleReminder(ctx, c)
	}
	return c, nil
}

func (s *DefaultCaseService) DeleteCase(ctx context.Context, userID, id string) error {
	repo, err := s.repo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}

func (s *DefaultCaseService) LinkDraft(ctx context.Context, userID, caseID, draftID string) (*models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	if s.Drafts == nil {
		return nil, fmt.Errorf("drafts: %w", utils.ErrServiceUnavailable)
	}
	if _, err := s.Drafts.GetByID(ctx, userID, draftID); err != nil {
		return nil, err
	}

	c, err := repo.GetByID(ctx, userID, caseID)
	if err != nil {
		return nil, err
	}
	for _, id := range c.RelatedDocumentIDs {
		if id == draftID {
			return c, nil
		}
	}

	if _, err := repo.AddRelatedDocument(ctx, userID, caseID, draftID, utils.NextModified(c.LastModified)); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, userID, caseID)
}

func (s *DefaultCaseService) UnlinkDraft(ctx context.Context, userID, caseID, draftID string) (*models.Case, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}
	c, err := repo.GetByID(ctx, userID, caseID)
	if err != nil {
		return nil, err
	}
	if _, err := repo.RemoveRelatedDocument(ctx, userID, caseID, draftID, utils.NextModified(c.LastModified)); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, userID, caseID)
}
