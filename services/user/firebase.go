package user

import (
	"context"
	"errors"

	"lexaid/models"

	"firebase.google.com/go/v4/auth"
)

// FirebaseVerifier verifies Firebase ID tokens (Google sign-in on the client).
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (models.ProfileIdentity, error) {
	if v == nil || v.Client == nil {
		return models.ProfileIdentity{}, errors.New("firebase auth is not configured")
	}
	tok, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.ProfileIdentity{}, err
	}

	claim := func(key string) string {
		s, _ := tok.Claims[key].(string)
		return s
	}
	return models.ProfileIdentity{
		UID:         tok.UID,
		Email:       claim("email"),
		DisplayName: claim("name"),
		PhotoURL:    claim("picture"),
	}, nil
}
