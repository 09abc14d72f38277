package repository

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// TaskPatch carries the fields of a partial update. A nil field is left
// unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *time.Time
}

// Every read and mutation is scoped by the owning user ID. A task that
// exists but belongs to someone else is indistinguishable from a task that
// does not exist: both are domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	ListByStatus(ctx context.Context, userID string, status domain.Status) ([]*domain.Task, error)
	Update(ctx context.Context, id, userID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*domain.TaskStats, error)

	// ListDueBetween returns tasks of any owner due inside [from, to) that
	// are not done, joined with owner contact details. Used by the reminder job.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.DueTask, error)
}
