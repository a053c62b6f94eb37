// Package tasks schedules and runs background jobs on asynq.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lexaid/models"
	"lexaid/services/notification"
	"lexaid/services/records"
	"lexaid/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeHearingReminder = "reminder:hearing"

// ReminderLead is how long before a hearing the reminder fires.
const ReminderLead = 24 * time.Hour

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewHearingReminderTask builds the reminder task for c. The task id is
// derived from the case and hearing date so rescheduling the same hearing
// is a no-op.
func NewHearingReminderTask(c *models.Case, now time.Time) (*asynq.Task, []asynq.Option, error) {
	if c.NextAdjournmentDate == nil {
		return nil, nil, errors.New("case has no hearing date")
	}
	hearing := c.NextAdjournmentDate.UTC()
	b, err := json.Marshal(models.HearingReminderPayload{
		UserID:      c.UserID,
		CaseID:      c.ID,
		HearingDate: hearing.Format(time.RFC3339),
	})
	if err != nil {
		return nil, nil, err
	}

	fireAt := hearing.Add(-ReminderLead)
	if fireAt.Before(now) {
		fireAt = now
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("hearing:%s:%d", c.ID, hearing.Unix())),
		asynq.MaxRetry(3),
		asynq.Retention(48 * time.Hour),
	}
	return asynq.NewTask(TypeHearingReminder, b), opts, nil
}

// ReminderScheduler enqueues hearing reminders.
type ReminderScheduler struct {
	Client Enqueuer
	Now    func() time.Time
}

func (s *ReminderScheduler) ScheduleHearingReminder(ctx context.Context, c *models.Case) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("reminder queue: %w", utils.ErrServiceUnavailable)
	}
	now := utils.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if c.NextAdjournmentDate == nil || !c.NextAdjournmentDate.After(now) {
		return nil
	}
	task, opts, err := NewHearingReminderTask(c, now)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue hearing reminder: %w", err)
	}
	utils.GetLogger().Info("Hearing reminder scheduled",
		zap.String("caseID", c.ID), zap.String("taskID", info.ID), zap.Time("processAt", info.NextProcessAt))
	return nil
}

var _ records.HearingScheduler = (*ReminderScheduler)(nil)

// HearingReminderHandler sends the push for a due reminder after checking
// the case still has that hearing.
type HearingReminderHandler struct {
	Cases    records.CaseService
	Notifier notification.NotificationService
}

func (h *HearingReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	var p models.HearingReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid hearing reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	c, err := h.Cases.GetCase(ctx, p.UserID, p.CaseID)
	if errors.Is(err, utils.ErrNotFound) {
		logger.Info("Hearing reminder dropped, case gone", zap.String("caseID", p.CaseID))
		return nil
	}
	if err != nil {
		return err
	}
	if c.Status == models.CaseStatusClosed || c.NextAdjournmentDate == nil ||
		c.NextAdjournmentDate.UTC().Format(time.RFC3339) != p.HearingDate {
		logger.Info("Hearing reminder stale", zap.String("caseID", p.CaseID), zap.String("hearingDate", p.HearingDate))
		return nil
	}

	title := fmt.Sprintf("Hearing coming up: %s", c.Title)
	body := fmt.Sprintf("Next adjournment date is %s", c.NextAdjournmentDate.UTC().Format("Mon 2 Jan 2006, 15:04 MST"))
	if c.Court != "" {
		body += " at " + c.Court
	}
	sent, err := h.Notifier.SendUserPushNotification(ctx, p.UserID, title, body, map[string]string{
		"type":        "hearing_reminder",
		"caseId":      c.ID,
		"hearingDate": p.HearingDate,
	})
	if err != nil {
		logger.Warn("Failed to send hearing reminder", zap.String("caseID", c.ID), zap.Error(err))
		return err
	}
	logger.Info("Hearing reminder processed", zap.String("caseID", c.ID), zap.Bool("sent", sent))
	return nil
}
