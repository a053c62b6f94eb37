// Package cron runs the background reminder worker.
package cron

import (
	"context"
	"time"

	"lexaid/config"
	"lexaid/services/tasks"
	"lexaid/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the reminder queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// NewMux routes task types to their handlers.
func NewMux(reminders *tasks.HearingReminderHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeHearingReminder, reminders)
	return mux
}

// InitReminderWorker starts the asynq worker in the background and returns
// the server so the caller can shut it down.
func InitReminderWorker(ctx context.Context, reminders *tasks.HearingReminderHandler) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	mux := NewMux(reminders)

	go monitorRedisConnection(ctx)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Reminder worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Reminder worker disabled after repeated failures")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue database until ctx ends.
func monitorRedisConnection(ctx context.Context) {
	opt := RedisOpt()
	client := redis.NewClient(&redis.Options{Addr: opt.Addr, Password: opt.Password, DB: opt.DB})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("Reminder queue Redis unreachable", zap.Error(err))
			}
		}
	}
}
