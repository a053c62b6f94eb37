package draftRepo

import (
	"context"

	"lexaid/models"
)

// DraftRepository defines owner-scoped access to saved drafts.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) error
	// ListByOwner returns the owner's drafts, most recently modified first.
	ListByOwner(ctx context.Context, userID string) ([]models.Draft, error)
	GetByID(ctx context.Context, userID, id string) (*models.Draft, error)
	// Update writes the mutable fields of draft. Ownership is part of the filter.
	Update(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, userID, id string) error
}
