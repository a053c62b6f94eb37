package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lexaid/models"
	"lexaid/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) repo() error {
	if s == nil || s.Repo == nil {
		return fmt.Errorf("profiles: %w", utils.ErrServiceUnavailable)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }

// trialSubscription is the free trial starting now for one month.
func trialSubscription() models.Subscription {
	start := utils.Now()
	end := start.AddDate(0, 1, 0)
	return models.Subscription{
		PlanName:  models.TrialPlanName,
		PlanID:    models.TrialPlanID,
		Status:    models.SubscriptionActive,
		StartDate: start,
		EndDate:   &end,
	}
}

func newProfile(id models.ProfileIdentity) *models.UserProfile {
	now := utils.Now()
	displayName := id.DisplayName
	if displayName == "" {
		displayName = strings.Split(id.Email, "@")[0]
	}
	p := &models.UserProfile{
		UID:                id.UID,
		Email:              strings.ToLower(strings.TrimSpace(id.Email)),
		DisplayName:        displayName,
		PhotoURL:           id.PhotoURL,
		EmailNotifications: boolPtr(true),
		InAppNotifications: boolPtr(true),
		AuthProvider:       id.AuthProvider,
		CreatedAt:          now,
		LastModified:       now,
	}
	trial := trialSubscription()
	p.SubscriptionPlan = trial.PlanName
	p.SubscriptionPlanID = trial.PlanID
	p.SubscriptionStatus = trial.Status
	p.SubscriptionStartDate = &trial.StartDate
	p.SubscriptionEndDate = trial.EndDate
	return p
}

func (s *DefaultUserService) EnsureProfile(ctx context.Context, id models.ProfileIdentity) (*models.UserProfile, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	if id.UID == "" {
		return nil, utils.NewValidationError("uid", "is required")
	}

	existing, err := s.Repo.GetByUID(ctx, id.UID)
	if errors.Is(err, utils.ErrNotFound) {
		p := newProfile(id)
		if err := s.Repo.Create(ctx, p); err != nil {
			// Lost a race with a concurrent first sign-in; the other write wins.
			if errors.Is(err, utils.ErrConflict) {
				return s.Repo.GetByUID(ctx, id.UID)
			}
			return nil, err
		}
		utils.GetLogger().Info("Created profile", zap.String("uid", p.UID), zap.String("provider", p.AuthProvider))
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	p, err := s.Repo.RefreshIdentity(ctx, id, utils.NextModified(existing.LastModified))
	if err != nil {
		return nil, err
	}
	if !p.HasPlan() {
		return s.Repo.StartTrial(ctx, id.UID, trialSubscription(), utils.NextModified(p.LastModified))
	}
	return p, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	return s.Repo.GetByUID(ctx, uid)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, uid string, in models.ProfileSettings) (*models.UserProfile, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	if in.DisplayName != nil && strings.TrimSpace(*in.DisplayName) == "" {
		return nil, utils.NewValidationError("displayName", "cannot be empty")
	}
	p, err := s.Repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.Repo.UpdateSettings(ctx, uid, in, utils.NextModified(p.LastModified))
}

// UpdateSubscription records a paid subscription. A transaction id that was
// already applied to any profile is refused with ErrConflict.
func (s *DefaultUserService) UpdateSubscription(ctx context.Context, uid string, sub models.Subscription) (*models.UserProfile, error) {
	if err := s.repo(); err != nil {
		return nil, err
	}
	current, err := s.Repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.SetSubscription(ctx, uid, sub, utils.NextModified(current.LastModified))
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Subscription updated",
		zap.String("uid", uid), zap.String("plan", sub.PlanID), zap.String("subscriptionId", sub.ID))
	return p, nil
}
