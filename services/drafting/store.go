// File: services/drafting/store.go
package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexaid/models"
	"lexaid/utils"

	"github.com/go-redis/redis/v8"
)

// WorkspaceStore persists drafting workspaces between requests.
type WorkspaceStore interface {
	// Get returns the stored workspace, or nil when there is none.
	Get(ctx context.Context, userID, docTypeID string) (*models.Workspace, error)
	Put(ctx context.Context, userID string, ws *models.Workspace) error
	Delete(ctx context.Context, userID, docTypeID string) error
}

// RedisWorkspaceStore keeps workspaces as JSON values that expire after ttl
// without activity.
type RedisWorkspaceStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisWorkspaceStore(client *redis.Client, ttl time.Duration) *RedisWorkspaceStore {
	return &RedisWorkspaceStore{client: client, ttl: ttl}
}

func workspaceKey(userID, docTypeID string) string {
	return utils.WorkspacePrefix + userID + ":" + docTypeID
}

func (s *RedisWorkspaceStore) Get(ctx context.Context, userID, docTypeID string) (*models.Workspace, error) {
	data, err := s.client.Get(ctx, workspaceKey(userID, docTypeID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("workspace cache: %w: %v", utils.ErrServiceUnavailable, err)
	}
	var ws models.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace: %w", err)
	}
	return &ws, nil
}

func (s *RedisWorkspaceStore) Put(ctx context.Context, userID string, ws *models.Workspace) error {
	b, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, workspaceKey(userID, ws.DocumentTypeID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("workspace cache: %w: %v", utils.ErrServiceUnavailable, err)
	}
	return nil
}

func (s *RedisWorkspaceStore) Delete(ctx context.Context, userID, docTypeID string) error {
	if err := s.client.Del(ctx, workspaceKey(userID, docTypeID)).Err(); err != nil {
		return fmt.Errorf("workspace cache: %w: %v", utils.ErrServiceUnavailable, err)
	}
	return nil
}
