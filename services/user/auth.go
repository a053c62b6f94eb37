package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexaid/models"
	"lexaid/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = fmt.Errorf("invalid email or password: %w", utils.ErrUnauthorized)

func (s *DefaultUserService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 72 * time.Hour
}

// issueToken signs an app token and records its hash so it can be revoked.
func (s *DefaultUserService) issueToken(ctx context.Context, p *models.UserProfile) (*AuthResponse, error) {
	ttl := s.ttl()
	token, err := utils.GenerateToken(p.UID, p.Email, ttl)
	if err != nil {
		utils.GetLogger().Error("Failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", utils.ErrServiceUnavailable)
	}
	hash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, p.UID, hash); err != nil {
		return nil, err
	}
	p.TokenHash = hash
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, utils.AuthCachePrefix+p.UID, hash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to cache token hash", zap.String("uid", p.UID), zap.Error(err))
		}
	}
	return &AuthResponse{Token: token, ExpiresAt: time.Now().Add(ttl).UTC(), Profile: p}, nil
}

func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.NewValidationError("email", "a valid email is required")
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	_, err := s.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("a user with this email already exists: %w", utils.ErrConflict)
	case !errors.Is(err, utils.ErrNotFound):
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	p := newProfile(models.ProfileIdentity{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		AuthProvider: models.AuthProviderPassword,
	})
	p.PasswordHash = string(hashed)
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.issueToken(ctx, p)
}

func (s *DefaultUserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	p, err := s.Repo.GetPasswordAccount(ctx, req.Email)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if p.PasswordHash == "" {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	// Signing in is also when a missing trial gets back-filled.
	p, err = s.EnsureProfile(ctx, models.ProfileIdentity{UID: p.UID, Email: p.Email})
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, p)
}

func (s *DefaultUserService) FirebaseSignIn(ctx context.Context, idToken string) (*AuthResponse, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	if s.Verifier == nil {
		return nil, fmt.Errorf("identity provider: %w", utils.ErrServiceUnavailable)
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, utils.NewValidationError("idToken", "is required")
	}

	identity, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		utils.GetLogger().Warn("Rejected identity token", zap.Error(err))
		return nil, fmt.Errorf("invalid identity token: %w", utils.ErrUnauthorized)
	}
	identity.AuthProvider = models.AuthProviderFirebase

	p, err := s.EnsureProfile(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, p)
}

func (s *DefaultUserService) Logout(ctx context.Context, uid string) error {
	if err := s.repo(); err != nil {
		return err
	}
	if err := s.Repo.SetTokenHash(ctx, uid, ""); err != nil {
		return err
	}
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, utils.AuthCachePrefix+uid).Err(); err != nil {
			utils.GetLogger().Warn("Failed to clear cached token", zap.String("uid", uid), zap.Error(err))
		}
	}
	return nil
}

// Authenticate validates the token signature, then checks that its hash is
// the one currently on record, consulting the cache before the database.
func (s *DefaultUserService) Authenticate(ctx context.Context, token string) (utils.Session, error) {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return utils.Session{}, fmt.Errorf("invalid token: %w", utils.ErrUnauthorized)
	}
	hash := utils.HashToken(token)
	session := utils.Session{UserID: claims.Subject, Email: claims.Email}

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, utils.AuthCachePrefix+claims.Subject).Result()
		if err == nil && cached == hash {
			return session, nil
		}
		if err != nil && err != redis.Nil {
			utils.GetLogger().Warn("Auth cache lookup failed", zap.Error(err))
		}
	}

	if err := s.repo(); err != nil {
		return utils.Session{}, err
	}
	p, err := s.Repo.GetByUID(ctx, claims.Subject)
	if errors.Is(err, utils.ErrNotFound) {
		return utils.Session{}, fmt.Errorf("unknown user: %w", utils.ErrUnauthorized)
	}
	if err != nil {
		return utils.Session{}, err
	}
	if p.TokenHash == "" || p.TokenHash != hash {
		return utils.Session{}, fmt.Errorf("token revoked: %w", utils.ErrUnauthorized)
	}

	if s.Cache != nil {
		_ = s.Cache.Set(ctx, utils.AuthCachePrefix+claims.Subject, hash, utils.AuthCacheTTL).Err()
	}
	return session, nil
}
