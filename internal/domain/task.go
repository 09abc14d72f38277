package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func Statuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string // nil means no description
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStats holds per-owner counts grouped by status and priority.
// Maps are zero-filled for every known enum value.
type TaskStats struct {
	Total      int
	ByStatus   map[Status]int
	ByPriority map[Priority]int
}

// DueTask pairs a task with its owner's contact details, used by the
// due-date reminder job.
type DueTask struct {
	Task       Task
	OwnerEmail string
	OwnerName  string
}
