package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description *string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     *time.Time
}

func (u *TaskUsecase) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrTitleRequired
	}
	if input.Status == "" {
		input.Status = domain.StatusToDo
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if !input.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	created, err := u.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.Inc()
	return created, nil
}

func (u *TaskUsecase) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	return u.repo.GetByID(ctx, id, userID)
}

func (u *TaskUsecase) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	return u.repo.List(ctx, userID)
}

func (u *TaskUsecase) ListByStatus(ctx context.Context, userID, status string) ([]*domain.Task, error) {
	s := domain.Status(status)
	if !s.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return u.repo.ListByStatus(ctx, userID, s)
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
	DueDate     *time.Time
}

// Update applies only the provided fields to the owned task.
func (u *TaskUsecase) Update(ctx context.Context, id, userID string, input UpdateTaskInput) (*domain.Task, error) {
	patch := repository.TaskPatch{
		Description: input.Description,
		DueDate:     input.DueDate,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrTitleRequired
		}
		patch.Title = &title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		patch.Status = input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		patch.Priority = input.Priority
	}

	return u.repo.Update(ctx, id, userID, patch)
}

// Delete is permanent; a repeated delete surfaces ErrTaskNotFound, never a
// silent success.
func (u *TaskUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("delete task: %w", err)
	}
	metrics.TasksDeletedTotal.Inc()
	return nil
}

func (u *TaskUsecase) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	stats, err := u.repo.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	return stats, nil
}
