package user

import (
	"context"
	"time"

	profileRepo "lexaid/database/repository/profile"
	"lexaid/models"
	"lexaid/utils"

	"github.com/go-redis/redis/v8"
)

// ProfileService manages the per-user profile record.
type ProfileService interface {
	// EnsureProfile creates the profile on first sign-in and refreshes the
	// identity fields on later ones.
	EnsureProfile(ctx context.Context, id models.ProfileIdentity) (*models.UserProfile, error)
	GetProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid string, settings models.ProfileSettings) (*models.UserProfile, error)
	UpdateSubscription(ctx context.Context, uid string, sub models.Subscription) (*models.UserProfile, error)
}

// AuthService issues and checks app tokens.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	FirebaseSignIn(ctx context.Context, idToken string) (*AuthResponse, error)
	Logout(ctx context.Context, uid string) error
	// Authenticate resolves a bearer token to a session.
	Authenticate(ctx context.Context, token string) (utils.Session, error)
}

// IdentityVerifier checks an identity-provider token and returns who it names.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (models.ProfileIdentity, error)
}

// DefaultUserService is the production implementation of both interfaces.
// Cache and Verifier are optional.
type DefaultUserService struct {
	Repo     profileRepo.ProfileRepository
	Cache    *redis.Client
	Verifier IdentityVerifier
	TokenTTL time.Duration
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse contains the app token and the signed-in profile.
type AuthResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	Profile   *models.UserProfile `json:"profile"`
}
