package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexaid/config"
	"lexaid/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance. It stays nil when the
// database is not configured or was unreachable at startup.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the connection with a ping.
func InitDB(ctx context.Context) error {
	if config.AppConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is empty: %w", utils.ErrServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// DB returns the application database, or nil when not connected.
func DB() *mongo.Database {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the global client if one is open.
func Disconnect(ctx context.Context) {
	if MongoClient == nil {
		return
	}
	if err := MongoClient.Disconnect(ctx); err != nil {
		utils.GetLogger().Warn("MongoDB disconnect failed", zap.Error(err))
	}
	MongoClient = nil
}

// Classify tags connectivity failures with utils.ErrServiceUnavailable so
// callers can answer 503 instead of 500.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
	}
	return err
}
