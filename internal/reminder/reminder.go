// Package reminder mails assignees about tasks due the next day.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/metrics"
	"github.com/robfig/cron/v3"
)

type dueTaskLister interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error)
}

type Runner struct {
	tasks  dueTaskLister
	email  email.Sender
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

type Option func(*Runner)

// WithLocation sets the zone whose midnight bounds "tomorrow". Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Runner) { r.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

func NewRunner(tasks dueTaskLister, sender email.Sender, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		tasks:  tasks,
		email:  sender,
		logger: logger.With("component", "reminder"),
		loc:    time.Local,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result summarizes one scan.
type Result struct {
	Sent   int
	Failed int
}

// RunOnce sends one reminder per task due tomorrow. A failed send is logged
// and counted; it does not stop the remaining sends.
func (r *Runner) RunOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { metrics.ReminderRunDuration.Observe(time.Since(start).Seconds()) }()

	from, to := tomorrow(r.now().In(r.loc))

	due, err := r.tasks.ListDueBetween(ctx, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("list due tasks: %w", err)
	}

	var res Result
	for _, t := range due {
		msg := email.ReminderMessage(t.AssigneeEmail, t.AssigneeName, t.Title, t.DueDate.In(r.loc))
		if _, err := r.email.Send(ctx, msg); err != nil {
			res.Failed++
			metrics.RemindersSentTotal.WithLabelValues("failure").Inc()
			r.logger.ErrorContext(ctx, "send reminder", "task_id", t.TaskID, "error", err)
			continue
		}
		res.Sent++
		metrics.RemindersSentTotal.WithLabelValues("success").Inc()
	}

	r.logger.InfoContext(ctx, "reminder run finished", "due", len(due), "sent", res.Sent, "failed", res.Failed)
	return res, nil
}

// Start runs RunOnce on the given standard cron expression until ctx is done.
func (r *Runner) Start(ctx context.Context, spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c := cron.New(cron.WithLocation(r.loc))
	if _, err := c.AddFunc(spec, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.ErrorContext(ctx, "reminder run", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}

	c.Start()
	r.logger.Info("reminder scheduler started", "schedule", spec, "next_run", c.Entries()[0].Next)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("reminder scheduler shut down")
	return nil
}

// tomorrow returns [midnight tomorrow, midnight the day after) in now's location.
func tomorrow(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	from := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, 1)
}
