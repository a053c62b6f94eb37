package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexaid/config"
	"lexaid/database/repository/memory"
	"lexaid/models"
	"lexaid/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

type fakeVerifier struct {
	identity models.ProfileIdentity
	err      error
}

func (f fakeVerifier) Verify(context.Context, string) (models.ProfileIdentity, error) {
	return f.identity, f.err
}

func newService(t *testing.T) *DefaultUserService {
	t.Helper()
	old := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = old })
	return &DefaultUserService{Repo: memory.NewStore().Profiles(), TokenTTL: time.Hour}
}

func TestEnsureProfileCreatesTrial(t *testing.T) {
	s := newService(t)
	p, err := s.EnsureProfile(context.Background(), models.ProfileIdentity{UID: "fb-1", Email: "Ada@Chambers.ng", DisplayName: "Ada"})
	require.NoError(t, err)

	assert.Equal(t, "ada@chambers.ng", p.Email)
	assert.Equal(t, "Free Trial", p.SubscriptionPlan)
	assert.Equal(t, "trial", p.SubscriptionPlanID)
	assert.Equal(t, models.SubscriptionActive, p.SubscriptionStatus)
	require.NotNil(t, p.SubscriptionEndDate)
	assert.Equal(t, p.SubscriptionStartDate.AddDate(0, 1, 0), *p.SubscriptionEndDate)
	assert.True(t, *p.EmailNotifications)
	assert.True(t, *p.InAppNotifications)
}

func TestEnsureProfileRefreshesAndBackfills(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	now := utils.Now()
	require.NoError(t, s.Repo.Create(ctx, &models.UserProfile{UID: "u1", Email: "old@x.ng", DisplayName: "Old", CreatedAt: now, LastModified: now}))

	p, err := s.EnsureProfile(ctx, models.ProfileIdentity{UID: "u1", Email: "new@x.ng", DisplayName: "New", PhotoURL: "https://img"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.ng", p.Email)
	assert.Equal(t, "New", p.DisplayName)
	assert.Equal(t, "https://img", p.PhotoURL)
	assert.Equal(t, models.TrialPlanID, p.SubscriptionPlanID)
	assert.True(t, p.LastModified.After(now))

	// A paid plan is never replaced by the trial.
	_, err = s.UpdateSubscription(ctx, "u1", models.Subscription{PlanName: "LexAid Plus", PlanID: "plus", ID: "tx-1", Status: models.SubscriptionActive, StartDate: now})
	require.NoError(t, err)
	p, err = s.EnsureProfile(ctx, models.ProfileIdentity{UID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "plus", p.SubscriptionPlanID)
	assert.Nil(t, p.SubscriptionEndDate)
}

func TestUpdateProfileSettings(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.EnsureProfile(ctx, models.ProfileIdentity{UID: "u1", Email: "a@b.ng"})
	require.NoError(t, err)

	off := false
	phone := "+2348012345678"
	p, err := s.UpdateProfile(ctx, "u1", models.ProfileSettings{InAppNotifications: &off, PhoneNumber: &phone})
	require.NoError(t, err)
	assert.False(t, p.WantsInAppNotifications())
	assert.Equal(t, phone, p.PhoneNumber)
	assert.True(t, *p.EmailNotifications)

	empty := " "
	_, err = s.UpdateProfile(ctx, "u1", models.ProfileSettings{DisplayName: &empty})
	var verr *utils.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSettingsUpdateLeavesTokenAlone(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, RegisterRequest{Email: "ada@chambers.ng", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	uid := reg.Profile.UID

	name := "Ada Obi"
	_, err = s.UpdateProfile(ctx, uid, models.ProfileSettings{DisplayName: &name})
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, reg.Token)
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx, uid))
	off := false
	p, err := s.UpdateProfile(ctx, uid, models.ProfileSettings{EmailNotifications: &off})
	require.NoError(t, err)
	assert.Empty(t, p.TokenHash)
	assert.NotEmpty(t, p.PasswordHash)
	_, err = s.Authenticate(ctx, reg.Token)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestUpdateSubscriptionRefusesReusedTransaction(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	for _, uid := range []string{"u1", "u2"} {
		_, err := s.EnsureProfile(ctx, models.ProfileIdentity{UID: uid, Email: uid + "@x.ng"})
		require.NoError(t, err)
	}
	sub := models.Subscription{PlanName: "LexAid Plus", PlanID: "plus", ID: "tx-9", Status: models.SubscriptionActive, StartDate: utils.Now()}

	p, err := s.UpdateSubscription(ctx, "u1", sub)
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-9"}, p.TransactionIDs)

	_, err = s.UpdateSubscription(ctx, "u1", sub)
	assert.ErrorIs(t, err, utils.ErrConflict)
	_, err = s.UpdateSubscription(ctx, "u2", sub)
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = s.UpdateSubscription(ctx, "ghost", sub)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestLoginUsesPasswordAccount(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	s.Verifier = fakeVerifier{identity: models.ProfileIdentity{UID: "google-1", Email: "ada@chambers.ng"}}
	_, err := s.FirebaseSignIn(ctx, "tok")
	require.NoError(t, err)

	// The email is taken by the Firebase account.
	_, err = s.Register(ctx, RegisterRequest{Email: "ada@chambers.ng", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, utils.ErrConflict)

	require.NoError(t, s.Repo.Create(ctx, &models.UserProfile{UID: "pw-1", Email: "ada@chambers.ng", PasswordHash: mustHash(t, "Str0ng!Pass")}))
	assert.ErrorIs(t, s.Repo.Create(ctx, &models.UserProfile{UID: "pw-2", Email: "ada@chambers.ng", PasswordHash: "x"}), utils.ErrConflict)

	login, err := s.Login(ctx, LoginRequest{Email: "ada@chambers.ng", Password: "Str0ng!Pass"})
	require.NoError(t, err)
	assert.Equal(t, "pw-1", login.Profile.UID)
}

func TestRegisterLoginLogout(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Email: "ada@chambers.ng", Password: "weak"})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)

	reg, err := s.Register(ctx, RegisterRequest{Email: "ada@chambers.ng", Password: "Str0ng!Pass", DisplayName: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.AuthProviderPassword, reg.Profile.AuthProvider)

	_, err = s.Register(ctx, RegisterRequest{Email: "ADA@chambers.ng", Password: "Str0ng!Pass"})
	assert.ErrorIs(t, err, utils.ErrConflict)

	_, err = s.Login(ctx, LoginRequest{Email: "ada@chambers.ng", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	login, err := s.Login(ctx, LoginRequest{Email: "ada@chambers.ng", Password: "Str0ng!Pass"})
	require.NoError(t, err)

	session, err := s.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.Profile.UID, session.UserID)
	assert.Equal(t, "ada@chambers.ng", session.Email)

	// The older token was superseded by the login.
	_, err = s.Authenticate(ctx, reg.Token)
	if reg.Token != login.Token {
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	}

	require.NoError(t, s.Logout(ctx, session.UserID))
	_, err = s.Authenticate(ctx, login.Token)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	s := newService(t)
	_, err := s.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestFirebaseSignIn(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.FirebaseSignIn(ctx, "tok")
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)

	s.Verifier = fakeVerifier{err: errors.New("expired")}
	_, err = s.FirebaseSignIn(ctx, "tok")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	s.Verifier = fakeVerifier{identity: models.ProfileIdentity{UID: "google-123", Email: "chidi@firm.ng", DisplayName: "Chidi"}}
	resp, err := s.FirebaseSignIn(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "google-123", resp.Profile.UID)
	assert.Equal(t, models.AuthProviderFirebase, resp.Profile.AuthProvider)
	assert.Equal(t, models.TrialPlanID, resp.Profile.SubscriptionPlanID)

	session, err := s.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "google-123", session.UserID)
}

func TestVerifyPasswordComplexity(t *testing.T) {
	assert.NoError(t, VerifyPasswordComplexity("Abcdef1!"))
	for _, pw := range []string{"Ab1!", "abcdefg1!", "ABCDEFG1!", "Abcdefgh!", "Abcdefgh1"} {
		assert.Error(t, VerifyPasswordComplexity(pw), pw)
	}
}
