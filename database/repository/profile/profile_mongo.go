// File: database/repository/profile/profile_mongo.go
package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexaid/database"
	"lexaid/models"
	"lexaid/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using the "users" collection.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo(ctx context.Context, db *mongo.Database) (*MongoProfileRepo, error) {
	r := &MongoProfileRepo{coll: db.Collection("users")}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MongoProfileRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBListTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "uid", Value: 1}}},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_password_unique").SetUnique(true).
				SetPartialFilterExpression(bson.M{"passwordHash": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "transactionIds", Value: 1}},
			Options: options.Index().SetName("transactionIds_unique").SetUnique(true).
				SetPartialFilterExpression(bson.M{"transactionIds": bson.M{"$exists": true}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoProfileRepo) Create(ctx context.Context, p *models.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("profile %s: %w", p.UID, utils.ErrConflict)
		}
		return fmt.Errorf("failed to create profile: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoProfileRepo) findOne(ctx context.Context, filter bson.M, label string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var p models.UserProfile
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("profile %s: %w", label, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", label, database.Classify(err))
	}
	return &p, nil
}

func (r *MongoProfileRepo) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"uid": uid}, uid)
}

func (r *MongoProfileRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *MongoProfileRepo) GetPasswordAccount(ctx context.Context, email string) (*models.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email, "passwordHash": bson.M{"$exists": true}}, email)
}

// update applies set to the profile matching filter and returns the result.
// A miss is reported as ErrNotFound; the caller decides whether the filter
// or the uid was the reason.
func (r *MongoProfileRepo) update(ctx context.Context, uid string, filter, update bson.M) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	var p models.UserProfile
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("profile %s: %w", uid, utils.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("profile %s: %w", uid, utils.ErrConflict)
	case err != nil:
		return nil, fmt.Errorf("failed to update profile %s: %w", uid, database.Classify(err))
	}
	return &p, nil
}

func (r *MongoProfileRepo) UpdateSettings(ctx context.Context, uid string, in models.ProfileSettings, modified time.Time) (*models.UserProfile, error) {
	set := bson.M{}
	if in.DisplayName != nil {
		set["displayName"] = *in.DisplayName
	}
	if in.PhoneNumber != nil {
		set["phoneNumber"] = *in.PhoneNumber
	}
	if in.PhotoURL != nil {
		set["photoURL"] = *in.PhotoURL
	}
	if in.EmailNotifications != nil {
		set["emailNotifications"] = *in.EmailNotifications
	}
	if in.InAppNotifications != nil {
		set["inAppNotifications"] = *in.InAppNotifications
	}
	if in.FCMToken != nil {
		set["fcmToken"] = *in.FCMToken
	}
	return r.update(ctx, uid, bson.M{"uid": uid}, withModified(set, modified))
}

func (r *MongoProfileRepo) RefreshIdentity(ctx context.Context, id models.ProfileIdentity, modified time.Time) (*models.UserProfile, error) {
	set := bson.M{}
	if id.Email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(id.Email))
	}
	if id.DisplayName != "" {
		set["displayName"] = id.DisplayName
	}
	if id.PhotoURL != "" {
		set["photoURL"] = id.PhotoURL
	}
	return r.update(ctx, id.UID, bson.M{"uid": id.UID}, withModified(set, modified))
}

func (r *MongoProfileRepo) StartTrial(ctx context.Context, uid string, trial models.Subscription, modified time.Time) (*models.UserProfile, error) {
	filter := bson.M{"uid": uid, "subscriptionPlanId": bson.M{"$in": bson.A{nil, ""}}}
	p, err := r.update(ctx, uid, filter, subscriptionUpdate(trial, modified))
	if errors.Is(err, utils.ErrNotFound) {
		// Either the uid is unknown or a plan is already assigned.
		return r.GetByUID(ctx, uid)
	}
	return p, err
}

func (r *MongoProfileRepo) SetSubscription(ctx context.Context, uid string, sub models.Subscription, modified time.Time) (*models.UserProfile, error) {
	if sub.ID == "" {
		return nil, utils.NewValidationError("subscriptionId", "is required")
	}
	update := subscriptionUpdate(sub, modified)
	update["$push"] = bson.M{"transactionIds": sub.ID}

	p, err := r.update(ctx, uid, bson.M{"uid": uid, "transactionIds": bson.M{"$ne": sub.ID}}, update)
	if errors.Is(err, utils.ErrNotFound) {
		if _, gerr := r.GetByUID(ctx, uid); gerr != nil {
			return nil, gerr
		}
		return nil, fmt.Errorf("transaction %s already applied: %w", sub.ID, utils.ErrConflict)
	}
	if errors.Is(err, utils.ErrConflict) {
		return nil, fmt.Errorf("transaction %s already applied: %w", sub.ID, utils.ErrConflict)
	}
	return p, err
}

func withModified(set bson.M, modified time.Time) bson.M {
	update := bson.M{"$max": bson.M{"lastModified": modified}}
	if len(set) > 0 {
		update["$set"] = set
	}
	return update
}

func subscriptionUpdate(sub models.Subscription, modified time.Time) bson.M {
	set := bson.M{
		"subscriptionPlan":      sub.PlanName,
		"subscriptionPlanId":    sub.PlanID,
		"subscriptionStatus":    sub.Status,
		"subscriptionStartDate": sub.StartDate,
	}
	if sub.ID != "" {
		set["subscriptionId"] = sub.ID
	}
	if sub.EndDate != nil {
		set["subscriptionEndDate"] = *sub.EndDate
	}
	update := withModified(set, modified)
	if sub.EndDate == nil {
		update["$unset"] = bson.M{"subscriptionEndDate": ""}
	}
	return update
}

func (r *MongoProfileRepo) SetTokenHash(ctx context.Context, uid, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, utils.DBTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"tokenHash": hash}}
	if hash == "" {
		update = bson.M{"$unset": bson.M{"tokenHash": ""}}
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"uid": uid}, update)
	if err != nil {
		return fmt.Errorf("failed to store token for %s: %w", uid, database.Classify(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("profile %s: %w", uid, utils.ErrNotFound)
	}
	return nil
}
