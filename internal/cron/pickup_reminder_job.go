package cron

import (
	"context"
	"fmt"

	"github.com/panesgr/chatbot-backend/internal/reminders"
)

// PickupReminderJob adapts the reminder sweep to the cron Job interface.
type PickupReminderJob struct {
	sweep *reminders.Job
}

// NewPickupReminderJob wraps the reminder sweep for scheduling.
func NewPickupReminderJob(sweep *reminders.Job) (*PickupReminderJob, error) {
	if sweep == nil {
		return nil, fmt.Errorf("reminder sweep required")
	}
	return &PickupReminderJob{sweep: sweep}, nil
}

func (j *PickupReminderJob) Name() string { return "pickup-reminders" }

func (j *PickupReminderJob) Run(ctx context.Context) error {
	_, err := j.sweep.Run(ctx)
	return err
}
