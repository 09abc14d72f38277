package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/email"
	"github.com/taskdeck/taskdeck/internal/metrics"
)

const window = 24 * time.Hour

// taskSource is the slice of the task repository the reminder needs.
type taskSource interface {
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error)
}

// Reminder emails each owner a digest of their tasks due within the next 24
// hours. It fires on a cron schedule and holds no state between runs.
type Reminder struct {
	tasks  taskSource
	sender email.Sender
	logger *slog.Logger
	spec   string
}

func New(tasks taskSource, sender email.Sender, logger *slog.Logger, spec string) *Reminder {
	return &Reminder{
		tasks:  tasks,
		sender: sender,
		logger: logger.With("component", "reminder"),
		spec:   spec,
	}
}

// Start registers the cron entry and blocks until ctx is cancelled.
func (r *Reminder) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.spec, func() {
		if err := r.Run(ctx); err != nil {
			r.logger.Error("reminder run", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("parse reminder schedule: %w", err)
	}

	c.Start()
	r.logger.Info("reminder job scheduled", "spec", r.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("reminder job shut down")
	return nil
}

// Run executes a single reminder pass.
func (r *Reminder) Run(ctx context.Context) error {
	now := time.Now()
	due, err := r.tasks.ListDueBetween(ctx, now, now.Add(window))
	if err != nil {
		return fmt.Errorf("list due tasks: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	// Rows arrive ordered by owner email, so a single pass groups them.
	var (
		ownerEmail string
		ownerName  string
		batch      []*domain.DueTask
	)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.send(ctx, ownerEmail, ownerName, batch); err != nil {
			r.logger.Error("send reminder", "to", ownerEmail, "error", err)
			metrics.ReminderEmailsTotal.WithLabelValues("failure").Inc()
		} else {
			metrics.ReminderEmailsTotal.WithLabelValues("success").Inc()
		}
		batch = batch[:0]
	}

	for _, d := range due {
		if d.OwnerEmail != ownerEmail {
			flush()
			ownerEmail = d.OwnerEmail
			ownerName = d.OwnerName
		}
		batch = append(batch, d)
	}
	flush()

	r.logger.Info("reminder pass complete", "due_tasks", len(due))
	return nil
}

func (r *Reminder) send(ctx context.Context, to, name string, due []*domain.DueTask) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s, you have %d task(s) due in the next 24 hours:</p><ul>", name, len(due))
	for _, d := range due {
		fmt.Fprintf(&b, "<li>%s (%s priority, due %s)</li>",
			d.Task.Title, d.Task.Priority, d.Task.DueDate.Format("Jan 2 15:04"))
	}
	b.WriteString("</ul>")

	subject := fmt.Sprintf("You have %d task(s) due soon", len(due))
	return r.sender.Send(ctx, to, subject, b.String())
}
