// File: models/profile.go
package models

import "time"

// SubscriptionStatus mirrors the gateway-facing lifecycle of a plan.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionPastDue   SubscriptionStatus = "past_due"
)

const (
	AuthProviderPassword = "password"
	AuthProviderFirebase = "firebase"
)

// UserProfile is the per-user account record. It is keyed by UID rather
// than a generated id because Firebase users arrive with their own.
type UserProfile struct {
	UID                   string             `bson:"uid" json:"uid"`
	Email                 string             `bson:"email" json:"email"`
	DisplayName           string             `bson:"displayName" json:"displayName"`
	PhotoURL              string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	PhoneNumber           string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	EmailNotifications    *bool              `bson:"emailNotifications,omitempty" json:"emailNotifications,omitempty"`
	InAppNotifications    *bool              `bson:"inAppNotifications,omitempty" json:"inAppNotifications,omitempty"`
	SubscriptionPlan      string             `bson:"subscriptionPlan,omitempty" json:"subscriptionPlan,omitempty"`
	SubscriptionPlanID    string             `bson:"subscriptionPlanId,omitempty" json:"subscriptionPlanId,omitempty"`
	SubscriptionID        string             `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	SubscriptionStatus    SubscriptionStatus `bson:"subscriptionStatus,omitempty" json:"subscriptionStatus,omitempty"`
	SubscriptionStartDate *time.Time         `bson:"subscriptionStartDate,omitempty" json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time         `bson:"subscriptionEndDate,omitempty" json:"subscriptionEndDate,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	LastModified          time.Time          `bson:"lastModified" json:"lastModified"`

	// Server-only fields.
	PasswordHash string `bson:"passwordHash,omitempty" json:"-"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string `bson:"fcmToken,omitempty" json:"-"`
	AuthProvider string `bson:"authProvider,omitempty" json:"authProvider,omitempty"`
	// TransactionIDs lists every payment applied to this profile. A
	// transaction id appears on at most one profile, once.
	TransactionIDs []string `bson:"transactionIds,omitempty" json:"-"`
}

// HasPlan reports whether a subscription plan has ever been assigned.
func (p *UserProfile) HasPlan() bool {
	return p.SubscriptionPlanID != ""
}

// WantsInAppNotifications treats an unset toggle as enabled.
func (p *UserProfile) WantsInAppNotifications() bool {
	return p.InAppNotifications == nil || *p.InAppNotifications
}

// ProfileIdentity is what a sign-in knows about the user.
type ProfileIdentity struct {
	UID          string
	Email        string
	DisplayName  string
	PhotoURL     string
	AuthProvider string
}

// ProfileSettings is the user-editable subset of the profile.
type ProfileSettings struct {
	DisplayName        *string `json:"displayName,omitempty"`
	PhoneNumber        *string `json:"phoneNumber,omitempty"`
	PhotoURL           *string `json:"photoURL,omitempty"`
	EmailNotifications *bool   `json:"emailNotifications,omitempty"`
	InAppNotifications *bool   `json:"inAppNotifications,omitempty"`
	FCMToken           *string `json:"fcmToken,omitempty"`
}

func (s ProfileSettings) IsEmpty() bool {
	return s.DisplayName == nil && s.PhoneNumber == nil && s.PhotoURL == nil &&
		s.EmailNotifications == nil && s.InAppNotifications == nil && s.FCMToken == nil
}

// Subscription is the set of subscription fields written after a verified payment.
type Subscription struct {
	PlanName  string
	PlanID    string
	ID        string
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
}
