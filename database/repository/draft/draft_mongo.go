// File: database/repository/draft/draft_mongo.go
package draftRepo

import (
	"context"
	"errors"
	"fmt"

	"lexaid/database"
	"lexaid/models"
	"lexaid/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "drafts"

// MongoDraftRepo implements DraftRepository using MongoDB.
type MongoDraftRepo struct {
	coll *mongo.Collection
}

// NewMongoDraftRepo binds the repository to db and ensures its indexes.
func NewMongoDraftRepo(ctx context.Context, db *mongo.Database) (*MongoDraftRepo, error) {
	r := &MongoDraftRepo{coll: db.Collection(collectionName)}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoDraftRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "lastModified", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create draft indexes: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoDraftRepo) Create(ctx context.Context, draft *models.Draft) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, draft); err != nil {
		return fmt.Errorf("failed to create draft: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoDraftRepo) ListByOwner(ctx context.Context, userID string) ([]models.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastModified", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", database.Classify(err))
	}
	defer cursor.Close(ctx)

	drafts := []models.Draft{}
	if err := cursor.All(ctx, &drafts); err != nil {
		return nil, fmt.Errorf("failed to decode drafts: %w", database.Classify(err))
	}
	return drafts, nil
}

func (r *MongoDraftRepo) GetByID(ctx context.Context, userID, id string) (*models.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var draft models.Draft
	err := r.coll.FindOne(ctx, bson.M{"id": id, "userId": userID}).Decode(&draft)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("draft %s: %w", id, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", id, database.Classify(err))
	}
	return &draft, nil
}

func (r *MongoDraftRepo) Update(ctx context.Context, draft *models.Draft) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"documentType": draft.DocumentType,
		"title":        draft.Title,
		"content":      draft.Content,
		"lastModified": draft.LastModified,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": draft.ID, "userId": draft.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update draft %s: %w", draft.ID, database.Classify(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("draft %s: %w", draft.ID, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoDraftRepo) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, database.Classify(err))
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("draft %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
