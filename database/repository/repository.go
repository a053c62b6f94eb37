package repository

import (
	"context"
	"fmt"

	caseRepo "lexaid/database/repository/legalcase"
	clauseRepo "lexaid/database/repository/clause"
	draftRepo "lexaid/database/repository/draft"
	profileRepo "lexaid/database/repository/profile"

	"go.mongodb.org/mongo-driver/mongo"
)

// Set groups the repositories the services depend on.
type Set struct {
	Drafts   draftRepo.DraftRepository
	Clauses  clauseRepo.ClauseRepository
	Cases    caseRepo.CaseRepository
	Profiles profileRepo.ProfileRepository
}

// NewMongoSet builds every repository against db.
func NewMongoSet(ctx context.Context, db *mongo.Database) (*Set, error) {
	drafts, err := draftRepo.NewMongoDraftRepo(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("drafts: %w", err)
	}
	clauses, err := clauseRepo.NewMongoClauseRepo(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("clauses: %w", err)
	}
	cases, err := caseRepo.NewMongoCaseRepo(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	profiles, err := profileRepo.NewMongoProfileRepo(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	return &Set{Drafts: drafts, Clauses: clauses, Cases: cases, Profiles: profiles}, nil
}
