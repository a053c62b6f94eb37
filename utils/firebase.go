// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"lexaid/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseAuth *auth.Client
	FCMClient    *messaging.Client
)

// FirebaseInit initializes the Firebase App with its Auth and Messaging clients.
func FirebaseInit(ctx context.Context) error {
	var opts []option.ClientOption
	if f := config.AppConfig.GoogleServiceAccountFile; f != "" {
		opts = append(opts, option.WithCredentialsFile(f))
	}
	var fbConfig *firebase.Config
	if id := config.AppConfig.FirebaseProjectID; id != "" {
		fbConfig = &firebase.Config{ProjectID: id}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FirebaseAuth = authClient
	FCMClient = msgClient
	return nil
}
