// Package reminder implements the daily due-date reminder job and the
// cron trigger that fires it.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/Fakhri-abraar/taskdeck/internal/store"
)

// Job queries for tasks due in the next-day window and invokes the
// notifier once per qualifying task. It runs as a trusted system
// principal: the store access is deliberately unscoped, across all
// owners, via store.ReminderTaskSource rather than the caller-scoped
// query entry point.
type Job struct {
	tasks    store.ReminderTaskSource
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time // Injectable for testing
}

// NewJob creates a reminder Job. The window is computed in loc, which
// must match the location the cron trigger fires in; a nil loc falls
// back to the process-local zone.
func NewJob(tasks store.ReminderTaskSource, notifier Notifier, loc *time.Location, log *slog.Logger) *Job {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	return &Job{
		tasks:    tasks,
		notifier: notifier,
		logger:   log.With(slog.String("component", "reminder_job")),
		now:      func() time.Time { return time.Now().In(loc) },
	}
}

// Window returns the reminder window for a given wall-clock instant:
// the 24 hours starting at the next local midnight, upper bound
// exclusive. A task due later today is excluded; one due any time
// tomorrow is included.
func Window(now time.Time) (from, to time.Time) {
	year, month, day := now.Date()
	from = time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to = from.AddDate(0, 0, 1)
	return from, to
}

// Run executes one firing of the reminder job. A notification failure
// for one task is logged and does not abort the remaining tasks; only a
// failure to query the store is returned.
func (j *Job) Run(ctx context.Context) error {
	from, to := Window(j.now())

	j.logger.Info("running task deadline reminders",
		"window_from", from,
		"window_to", to)

	tasks, err := j.tasks.FindDueBetween(ctx, from, to)
	if err != nil {
		j.logger.Error("failed to query tasks due for reminder", "error", err)
		return err
	}

	sent := 0
	for _, task := range tasks {
		if task.Author == nil || task.Author.Email == "" || task.DueDate == nil {
			continue
		}

		if err := j.notifier.SendTaskReminder(ctx, task.Author.Email, task.Title, *task.DueDate); err != nil {
			j.logger.Error("failed to send task reminder",
				"error", err,
				"task_id", task.ID,
				"recipient", task.Author.Email)
			continue
		}
		sent++
	}

	j.logger.Info("task deadline reminders finished",
		"matched", len(tasks),
		"sent", sent)
	return nil
}
