package profileRepo

import (
	"context"
	"time"

	"lexaid/models"
)

// ProfileRepository stores one profile per user, keyed by uid. Every write
// touches only the fields it names; modified is applied with $max so
// lastModified never moves backwards.
type ProfileRepository interface {
	Create(ctx context.Context, p *models.UserProfile) error
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	// GetByEmail finds any profile with this email.
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	// GetPasswordAccount finds the profile that signs in with a password
	// under this email. There is at most one.
	GetPasswordAccount(ctx context.Context, email string) (*models.UserProfile, error)

	UpdateSettings(ctx context.Context, uid string, in models.ProfileSettings, modified time.Time) (*models.UserProfile, error)
	// RefreshIdentity copies the non-empty identity fields onto the profile.
	RefreshIdentity(ctx context.Context, id models.ProfileIdentity, modified time.Time) (*models.UserProfile, error)
	// StartTrial assigns trial only when the profile has no plan yet.
	StartTrial(ctx context.Context, uid string, trial models.Subscription, modified time.Time) (*models.UserProfile, error)
	// SetSubscription records a paid subscription. It fails with
	// ErrConflict when sub.ID was already applied to any profile.
	SetSubscription(ctx context.Context, uid string, sub models.Subscription, modified time.Time) (*models.UserProfile, error)

	// SetTokenHash records the hash of the user's current app token; an
	// empty hash revokes it.
	SetTokenHash(ctx context.Context, uid, hash string) error
}
