package cron

import (
	"context"
	"errors"
	"testing"

	"lexaid/config"
	"lexaid/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOptUsesReminderDB(t *testing.T) {
	prev := config.AppConfig
	t.Cleanup(func() { config.AppConfig = prev })
	config.AppConfig.RedisAddr = "redis:6379"
	config.AppConfig.RedisPassword = "secret"
	config.AppConfig.RedisReminderDB = 4

	opt := RedisOpt()
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "secret", opt.Password)
	assert.Equal(t, 4, opt.DB)
}

func TestMuxRoutesHearingReminders(t *testing.T) {
	mux := NewMux(&tasks.HearingReminderHandler{})

	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeHearingReminder, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = mux.ProcessTask(context.Background(), asynq.NewTask("reminder:unknown", nil))
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
