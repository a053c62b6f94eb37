package clauseRepo

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

// MongoClauseRepo implements ClauseRepository using the "clauses" collection.
type MongoClauseRepo struct {
	coll *mongo.Collection
}

func NewMongoClauseRepo(ctx context.Context, db *mongo.Database) (*MongoClauseRepo, error) {
	r := &MongoClauseRepo{coll: db.Collection("clauses")}

	ictx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()
	_, err := r.coll.Indexes().CreateMany(ictx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "lastModified", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clause indexes: %w", database.Classify(err))
	}
	return r, nil
}

func ownerFilter(userID, id string) bson.M {
	return bson.M{"id": id, "userId": userID}
}

func (r *MongoClauseRepo) Create(ctx context.Context, clause *models.Clause) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, clause); err != nil {
		return fmt.Errorf("failed to create clause: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoClauseRepo) ListByOwner(ctx context.Context, userID string) ([]models.Clause, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastModified", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list clauses: %w", database.Classify(err))
	}
	defer cursor.Close(ctx)

	clauses := []models.Clause{}
	if err := cursor.All(ctx, &clauses); err != nil {
		return nil, fmt.Errorf("failed to decode clauses: %w", database.Classify(err))
	}
	return clauses, nil
}

func (r *MongoClauseRepo) GetByID(ctx context.Context, userID, id string) (*models.Clause, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var clause models.Clause
	switch err := r.coll.FindOne(ctx, ownerFilter(userID, id)).Decode(&clause); {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("clause %s: %w", id, utils.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("failed to get clause %s: %w", id, database.Classify(err))
	}
	return &clause, nil
}

func (r *MongoClauseRepo) Update(ctx context.Context, clause *models.Clause) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	set := bson.M{
		"title":        clause.Title,
		"content":      clause.Content,
		"category":     clause.Category,
		"lastModified": clause.LastModified,
	}
	result, err := r.coll.UpdateOne(ctx, ownerFilter(clause.UserID, clause.ID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update clause %s: %w", clause.ID, database.Classify(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("clause %s: %w", clause.ID, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoClauseRepo) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, ownerFilter(userID, id))
	if err != nil {
		return fmt.Errorf("failed to delete clause %s: %w", id, database.Classify(err))
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("clause %s: %w", id, utils.ErrNotFound)
	}
	return nil
}
