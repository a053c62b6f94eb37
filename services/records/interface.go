// Package records implements the owner-scoped draft, clause and case stores.
package records

import (
	"context"

	"lexaid/models"
)

type DraftService interface {
	CreateDraft(ctx context.Context, userID string, in models.DraftInput) (*models.Draft, error)
	ListDrafts(ctx context.Context, userID string) ([]models.Draft, error)
	GetDraft(ctx context.Context, userID, id string) (*models.Draft, error)
	UpdateDraft(ctx context.Context, userID, id string, patch models.DraftPatch) (*models.Draft, error)
	DeleteDraft(ctx context.Context, userID, id string) error
}

type ClauseService interface {
	CreateClause(ctx context.Context, userID string, in models.ClauseInput) (*models.Clause, error)
	ListClauses(ctx context.Context, userID string) ([]models.Clause, error)
	UpdateClause(ctx context.Context, userID, id string, patch models.ClausePatch) (*models.Clause, error)
	DeleteClause(ctx context.Context, userID, id string) error
}

type CaseService interface {
	CreateCase(ctx context.Context, userID string, in models.CaseInput) (*models.Case, error)
	ListCases(ctx context.Context, userID string) ([]models.Case, error)
	GetCase(ctx context.Context, userID, id string) (*models.Case, error)
	UpdateCase(ctx context.Context, userID, id string, patch models.CasePatch) (*models.Case, error)
	DeleteCase(ctx context.Context, userID, id string) error
	// LinkDraft adds draftID to the case's related documents. Linking an
	// already linked draft is a no-op.
	LinkDraft(ctx context.Context, userID, caseID, draftID string) (*models.Case, error)
	UnlinkDraft(ctx context.Context, userID, caseID, draftID string) (*models.Case, error)
}

// HearingScheduler is notified whenever a case's hearing date may have changed.
type HearingScheduler interface {
	ScheduleHearingReminder(ctx context.Context, c *models.Case) error
}
