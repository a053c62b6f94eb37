package clauseRepo

import (
	"context"

	"lexaid/models"
)

// ClauseRepository defines owner-scoped access to the clause library.
type ClauseRepository interface {
	Create(ctx context.Context, clause *models.Clause) error
	// ListByOwner returns the owner's clauses, most recently modified first.
	ListByOwner(ctx context.Context, userID string) ([]models.Clause, error)
	GetByID(ctx context.Context, userID, id string) (*models.Clause, error)
	// Update writes the mutable fields of clause. Ownership is part of the filter.
	Update(ctx context.Context, clause *models.Clause) error
	Delete(ctx context.Context, userID, id string) error
}
