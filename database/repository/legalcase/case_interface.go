package caseRepo

import (
	"context"
	"time"

	"lexaid/models"
)

// CaseRepository defines owner-scoped access to legal cases.
type CaseRepository interface {
	Create(ctx context.Context, c *models.Case) error
	ListByOwner(ctx context.Context, userID string) ([]models.Case, error)
	GetByID(ctx context.Context, userID, id string) (*models.Case, error)
	// Update writes every mutable field of c, removing nextAdjournmentDate when it is nil.
	Update(ctx context.Context, c *models.Case) error
	Delete(ctx context.Context, userID, id string) error

	// AddRelatedDocument appends draftID to the case's related documents
	// unless it is already present. It reports whether the list changed;
	// lastModified is only written when it did.
	AddRelatedDocument(ctx context.Context, userID, caseID, draftID string, modified time.Time) (bool, error)
	// RemoveRelatedDocument pulls draftID from the case, reporting whether it was present.
	RemoveRelatedDocument(ctx context.Context, userID, caseID, draftID string, modified time.Time) (bool, error)
	// PullDocumentFromAll removes draftID from every case of the owner.
	PullDocumentFromAll(ctx context.Context, userID, draftID string, modified time.Time) (int64, error)
}
