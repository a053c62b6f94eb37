package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"lexaid/models"
	"lexaid/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupTestDB(t *testing.T) *Set {
	t.Helper()
	url := os.Getenv("LEXAID_TEST_MONGO_URL")
	if url == "" {
		url = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test database: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("Skipping test: cannot ping test database: %v", err)
	}

	db := client.Database("lexaid_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	set, err := NewMongoSet(context.Background(), db)
	require.NoError(t, err)
	return set
}

func TestDraftRepoOwnerScopedCRUD(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()

	base := utils.Now()
	older := &models.Draft{ID: uuid.NewString(), UserID: "alice", Title: "Old", CreatedAt: base, LastModified: base}
	newer := &models.Draft{ID: uuid.NewString(), UserID: "alice", Title: "New", CreatedAt: base, LastModified: base.Add(time.Second)}
	other := &models.Draft{ID: uuid.NewString(), UserID: "bob", Title: "Bob's", CreatedAt: base, LastModified: base}
	for _, d := range []*models.Draft{older, newer, other} {
		require.NoError(t, set.Drafts.Create(ctx, d))
	}

	list, err := set.Drafts.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New", list[0].Title)
	assert.Equal(t, "Old", list[1].Title)

	_, err = set.Drafts.GetByID(ctx, "alice", other.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	other.UserID = "alice"
	other.Title = "hijack"
	assert.ErrorIs(t, set.Drafts.Update(ctx, other), utils.ErrNotFound)
	assert.ErrorIs(t, set.Drafts.Delete(ctx, "alice", other.ID), utils.ErrNotFound)

	require.NoError(t, set.Drafts.Delete(ctx, "alice", older.ID))
	list, err = set.Drafts.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCaseRepoRelatedDocumentsAreASet(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()

	now := utils.Now()
	c := &models.Case{ID: uuid.NewString(), UserID: "alice", Title: "State v. Musa", Status: models.CaseStatusOpen, CreatedAt: now, LastModified: now}
	require.NoError(t, set.Cases.Create(ctx, c))

	added, err := set.Cases.AddRelatedDocument(ctx, "alice", c.ID, "d1", now.Add(time.Millisecond))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = set.Cases.AddRelatedDocument(ctx, "alice", c.ID, "d1", now.Add(2*time.Millisecond))
	require.NoError(t, err)
	assert.False(t, added)

	got, err := set.Cases.GetByID(ctx, "alice", c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, got.RelatedDocumentIDs)
	assert.True(t, got.LastModified.Equal(now.Add(time.Millisecond)))

	_, err = set.Cases.AddRelatedDocument(ctx, "bob", c.ID, "d2", now)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	n, err := set.Cases.PullDocumentFromAll(ctx, "alice", "d1", now.Add(3*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCaseRepoUpdateClearsHearingDate(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()

	now := utils.Now()
	hearing := now.Add(72 * time.Hour)
	c := &models.Case{ID: uuid.NewString(), UserID: "alice", Title: "T", Status: models.CaseStatusOpen, NextAdjournmentDate: &hearing, CreatedAt: now, LastModified: now}
	require.NoError(t, set.Cases.Create(ctx, c))

	c.NextAdjournmentDate = nil
	c.LastModified = now.Add(time.Millisecond)
	require.NoError(t, set.Cases.Update(ctx, c))

	got, err := set.Cases.GetByID(ctx, "alice", c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NextAdjournmentDate)
}

func TestProfileRepoTokenHash(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()

	p := &models.UserProfile{UID: "u1", Email: "Ada@Example.com", DisplayName: "Ada", CreatedAt: utils.Now(), LastModified: utils.Now()}
	require.NoError(t, set.Profiles.Create(ctx, p))
	assert.ErrorIs(t, set.Profiles.Create(ctx, p), utils.ErrConflict)

	byEmail, err := set.Profiles.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.UID)

	require.NoError(t, set.Profiles.SetTokenHash(ctx, "u1", "abc"))
	got, err := set.Profiles.GetByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.TokenHash)

	require.NoError(t, set.Profiles.SetTokenHash(ctx, "u1", ""))
	got, err = set.Profiles.GetByUID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.TokenHash)

	assert.ErrorIs(t, set.Profiles.SetTokenHash(ctx, "ghost", "x"), utils.ErrNotFound)
}

func TestProfileRepoFieldUpdates(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()
	start := utils.Now()

	require.NoError(t, set.Profiles.Create(ctx, &models.UserProfile{UID: "u1", Email: "ada@example.com", PasswordHash: "h1", CreatedAt: start, LastModified: start}))
	require.NoError(t, set.Profiles.SetTokenHash(ctx, "u1", "t1"))

	name := "Ada"
	off := false
	p, err := set.Profiles.UpdateSettings(ctx, "u1", models.ProfileSettings{DisplayName: &name, InAppNotifications: &off}, start.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.False(t, p.WantsInAppNotifications())
	assert.Equal(t, "t1", p.TokenHash)
	assert.Equal(t, "h1", p.PasswordHash)

	// An older timestamp never moves lastModified back.
	p, err = set.Profiles.RefreshIdentity(ctx, models.ProfileIdentity{UID: "u1", PhotoURL: "https://img"}, start)
	require.NoError(t, err)
	assert.Equal(t, "https://img", p.PhotoURL)
	assert.True(t, p.LastModified.Equal(start.Add(time.Second)))

	p, err = set.Profiles.StartTrial(ctx, "u1", models.Subscription{PlanName: models.TrialPlanName, PlanID: models.TrialPlanID, Status: models.SubscriptionActive, StartDate: start}, start)
	require.NoError(t, err)
	assert.Equal(t, models.TrialPlanID, p.SubscriptionPlanID)

	end := start.AddDate(0, 1, 0)
	plus := models.Subscription{PlanName: "LexAid Plus", PlanID: "plus", ID: "tx-1", Status: models.SubscriptionActive, StartDate: start, EndDate: &end}
	p, err = set.Profiles.SetSubscription(ctx, "u1", plus, start.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "tx-1", p.SubscriptionID)
	assert.Equal(t, []string{"tx-1"}, p.TransactionIDs)
	assert.Equal(t, "t1", p.TokenHash)

	// The trial never replaces a paid plan.
	p, err = set.Profiles.StartTrial(ctx, "u1", models.Subscription{PlanName: models.TrialPlanName, PlanID: models.TrialPlanID, Status: models.SubscriptionActive, StartDate: start}, start)
	require.NoError(t, err)
	assert.Equal(t, "plus", p.SubscriptionPlanID)

	_, err = set.Profiles.SetSubscription(ctx, "u1", plus, start.Add(3*time.Second))
	assert.ErrorIs(t, err, utils.ErrConflict)

	require.NoError(t, set.Profiles.Create(ctx, &models.UserProfile{UID: "u2", Email: "bola@example.com", CreatedAt: start, LastModified: start}))
	_, err = set.Profiles.SetSubscription(ctx, "u2", plus, start.Add(time.Second))
	assert.ErrorIs(t, err, utils.ErrConflict)
	_, err = set.Profiles.SetSubscription(ctx, "ghost", plus, start)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestProfileRepoPasswordEmailUnique(t *testing.T) {
	set := setupTestDB(t)
	ctx := context.Background()
	now := utils.Now()

	require.NoError(t, set.Profiles.Create(ctx, &models.UserProfile{UID: "fb-1", Email: "ada@example.com", CreatedAt: now, LastModified: now}))
	require.NoError(t, set.Profiles.Create(ctx, &models.UserProfile{UID: "pw-1", Email: "ada@example.com", PasswordHash: "h", CreatedAt: now, LastModified: now}))
	assert.ErrorIs(t, set.Profiles.Create(ctx, &models.UserProfile{UID: "pw-2", Email: "Ada@Example.com", PasswordHash: "h", CreatedAt: now, LastModified: now}), utils.ErrConflict)

	p, err := set.Profiles.GetPasswordAccount(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pw-1", p.UID)
}
