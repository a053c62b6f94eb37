// File: database/repository/legalcase/case_mongo.go
package caseRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexaid/database"
	"lexaid/models"
	"lexaid/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCaseRepo implements CaseRepository using the "cases" collection.
type MongoCaseRepo struct {
	coll *mongo.Collection
}

func NewMongoCaseRepo(ctx context.Context, db *mongo.Database) (*MongoCaseRepo, error) {
	r := &MongoCaseRepo{coll: db.Collection("cases")}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoCaseRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "lastModified", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "relatedDocumentIds", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create case indexes: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoCaseRepo) Create(ctx context.Context, c *models.Case) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	if c.RelatedDocumentIDs == nil {
		c.RelatedDocumentIDs = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create case: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoCaseRepo) ListByOwner(ctx context.Context, userID string) ([]models.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastModified", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", database.Classify(err))
	}
	defer cursor.Close(ctx)

	cases := []models.Case{}
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("failed to decode cases: %w", database.Classify(err))
	}
	return cases, nil
}

func (r *MongoCaseRepo) GetByID(ctx context.Context, userID, id string) (*models.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var c models.Case
	err := r.coll.FindOne(ctx, bson.M{"id": id, "userId": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("case %s: %w", id, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %s: %w", id, database.Classify(err))
	}
	return &c, nil
}

func (r *MongoCaseRepo) Update(ctx context.Context, c *models.Case) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	set := bson.M{
		"title":        c.Title,
		"caseNumber":   c.CaseNumber,
		"court":        c.Court,
		"clientName":   c.ClientName,
		"opponentName": c.OpponentName,
		"parties":      c.Parties,
		"status":       c.Status,
		"priority":     c.Priority,
		"caseNotes":    c.CaseNotes,
		"lastModified": c.LastModified,
	}
	update := bson.M{"$set": set}
	if c.NextAdjournmentDate != nil {
		set["nextAdjournmentDate"] = *c.NextAdjournmentDate
	} else {
		update["$unset"] = bson.M{"nextAdjournmentDate": ""}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": c.ID, "userId": c.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update case %s: %w", c.ID, database.Classify(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("case %s: %w", c.ID, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoCaseRepo) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete case %s: %w", id, database.Classify(err))
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("case %s: %w", id, utils.ErrNotFound)
	}
	return nil
}

func (r *MongoCaseRepo) AddRelatedDocument(ctx context.Context, userID, caseID, draftID string, modified time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	// The $ne guard makes the append and the lastModified bump happen together or not at all.
	filter := bson.M{"id": caseID, "userId": userID, "relatedDocumentIds": bson.M{"$ne": draftID}}
	update := bson.M{
		"$push": bson.M{"relatedDocumentIds": draftID},
		"$set":  bson.M{"lastModified": modified},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to link draft %s to case %s: %w", draftID, caseID, database.Classify(err))
	}
	if result.MatchedCount > 0 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, userID, caseID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *MongoCaseRepo) RemoveRelatedDocument(ctx context.Context, userID, caseID, draftID string, modified time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	filter := bson.M{"id": caseID, "userId": userID, "relatedDocumentIds": draftID}
	update := bson.M{
		"$pull": bson.M{"relatedDocumentIds": draftID},
		"$set":  bson.M{"lastModified": modified},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to unlink draft %s from case %s: %w", draftID, caseID, database.Classify(err))
	}
	if result.MatchedCount > 0 {
		return true, nil
	}
	if _, err := r.GetByID(ctx, userID, caseID); err != nil {
		return false, err
	}
	return false, nil
}

func (r *MongoCaseRepo) PullDocumentFromAll(ctx context.Context, userID, draftID string, modified time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	filter := bson.M{"userId": userID, "relatedDocumentIds": draftID}
	update := bson.M{
		"$pull": bson.M{"relatedDocumentIds": draftID},
		"$set":  bson.M{"lastModified": modified},
	}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to unlink draft %s from cases: %w", draftID, database.Classify(err))
	}
	return result.ModifiedCount, nil
}
