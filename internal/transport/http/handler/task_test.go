package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/usecase"
)

type fakeTaskUsecase struct {
	create       func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	getByID      func(ctx context.Context, id, userID string) (*domain.Task, error)
	list         func(ctx context.Context, userID string) ([]*domain.Task, error)
	listByStatus func(ctx context.Context, userID, status string) ([]*domain.Task, error)
	update       func(ctx context.Context, id, userID string, input usecase.UpdateTaskInput) (*domain.Task, error)
	delete       func(ctx context.Context, id, userID string) error
	stats        func(ctx context.Context, userID string) (*domain.TaskStats, error)
}

func (f *fakeTaskUsecase) Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.create(ctx, input)
}

func (f *fakeTaskUsecase) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	return f.getByID(ctx, id, userID)
}

func (f *fakeTaskUsecase) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	return f.list(ctx, userID)
}

func (f *fakeTaskUsecase) ListByStatus(ctx context.Context, userID, status string) ([]*domain.Task, error) {
	return f.listByStatus(ctx, userID, status)
}

func (f *fakeTaskUsecase) Update(ctx context.Context, id, userID string, input usecase.UpdateTaskInput) (*domain.Task, error) {
	return f.update(ctx, id, userID, input)
}

func (f *fakeTaskUsecase) Delete(ctx context.Context, id, userID string) error {
	return f.delete(ctx, id, userID)
}

func (f *fakeTaskUsecase) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	return f.stats(ctx, userID)
}

func newTaskRouter(tasks taskUsecaser, userID string) *gin.Engine {
	h := NewTaskHandler(tasks, testLogger(), true)
	r := gin.New()
	g := r.Group("/api/tasks", identity(userID))
	g.GET("", h.List)
	g.GET("/stats", h.Stats)
	g.GET("/status/:status", h.ListByStatus)
	g.GET("/:id", h.GetByID)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func sampleTask(id string) *domain.Task {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:        id,
		UserID:    "user-1",
		Title:     "Buy milk",
		Status:    domain.StatusToDo,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---- Create ----

func TestTaskCreate_Created(t *testing.T) {
	tasks := &fakeTaskUsecase{
		create: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			if input.UserID != "user-1" {
				t.Errorf("userID = %q", input.UserID)
			}
			task := sampleTask("task-1")
			task.Title = input.Title
			return task, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["message"] != "Task created successfully" {
		t.Errorf("body = %v", body)
	}
	task, ok := body["task"].(map[string]any)
	if !ok {
		t.Fatalf("no task object in %v", body)
	}
	if task["id"] != "task-1" || task["status"] != "To Do" || task["priority"] != "Medium" {
		t.Errorf("task = %v", task)
	}
	if _, present := task["description"]; present {
		t.Error("nil description must be omitted")
	}
}

func TestTaskCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"blank title", domain.ErrTitleRequired, "Title is required"},
		{"bad status", domain.ErrInvalidStatus, "Invalid status value"},
		{"bad priority", domain.ErrInvalidPriority, "Invalid priority value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := &fakeTaskUsecase{
				create: func(_ context.Context, _ usecase.CreateTaskInput) (*domain.Task, error) {
					return nil, tt.err
				},
			}
			r := newTaskRouter(tasks, "user-1")

			w := performJSON(t, r, http.MethodPost, "/api/tasks", `{"title":"x"}`)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if decodeBody(t, w)["message"] != tt.message {
				t.Errorf("message = %v, want %q", decodeBody(t, w)["message"], tt.message)
			}
		})
	}
}

// ---- List ----

func TestTaskList_CountMatchesTasks(t *testing.T) {
	tasks := &fakeTaskUsecase{
		list: func(_ context.Context, userID string) ([]*domain.Task, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			return []*domain.Task{sampleTask("task-1"), sampleTask("task-2")}, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Errorf("count = %v", body["count"])
	}
	if len(body["tasks"].([]any)) != 2 {
		t.Errorf("tasks = %v", body["tasks"])
	}
}

func TestTaskList_Empty(t *testing.T) {
	tasks := &fakeTaskUsecase{
		list: func(_ context.Context, _ string) ([]*domain.Task, error) {
			return nil, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks", "")

	body := decodeBody(t, w)
	if body["count"] != float64(0) {
		t.Errorf("count = %v", body["count"])
	}
	if tasksField, ok := body["tasks"].([]any); !ok || len(tasksField) != 0 {
		t.Errorf("tasks = %v, want empty array", body["tasks"])
	}
}

// ---- ListByStatus ----

func TestTaskListByStatus_EchoesStatus(t *testing.T) {
	tasks := &fakeTaskUsecase{
		listByStatus: func(_ context.Context, _, status string) ([]*domain.Task, error) {
			if status != "In Progress" {
				t.Errorf("status = %q", status)
			}
			return []*domain.Task{sampleTask("task-1")}, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks/status/In%20Progress", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "In Progress" || body["count"] != float64(1) {
		t.Errorf("body = %v", body)
	}
}

func TestTaskListByStatus_Invalid(t *testing.T) {
	tasks := &fakeTaskUsecase{
		listByStatus: func(_ context.Context, _, _ string) ([]*domain.Task, error) {
			return nil, domain.ErrInvalidStatus
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks/status/Pending", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if decodeBody(t, w)["message"] != "Invalid status value" {
		t.Errorf("unexpected message")
	}
}

// ---- GetByID ----

func TestTaskGetByID_OK(t *testing.T) {
	tasks := &fakeTaskUsecase{
		getByID: func(_ context.Context, id, userID string) (*domain.Task, error) {
			if id != "task-1" || userID != "user-1" {
				t.Errorf("called with (%q, %q)", id, userID)
			}
			return sampleTask(id), nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks/task-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestTaskGetByID_OtherOwner_404(t *testing.T) {
	// Ownership scoping happens below the handler; a foreign task surfaces
	// as the same not-found as a missing one.
	tasks := &fakeTaskUsecase{
		getByID: func(_ context.Context, _, _ string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	r := newTaskRouter(tasks, "intruder")

	w := performJSON(t, r, http.MethodGet, "/api/tasks/task-1", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if decodeBody(t, w)["message"] != "Task not found" {
		t.Errorf("unexpected message")
	}
}

// ---- Update ----

func TestTaskUpdate_ConvertsEnumPointers(t *testing.T) {
	var gotInput usecase.UpdateTaskInput
	tasks := &fakeTaskUsecase{
		update: func(_ context.Context, _, _ string, input usecase.UpdateTaskInput) (*domain.Task, error) {
			gotInput = input
			task := sampleTask("task-1")
			task.Status = domain.StatusDone
			return task, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodPut, "/api/tasks/task-1", `{"status":"Done"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotInput.Status == nil || *gotInput.Status != domain.StatusDone {
		t.Errorf("input.Status = %v", gotInput.Status)
	}
	if gotInput.Title != nil || gotInput.Priority != nil {
		t.Errorf("unprovided fields must stay nil: %+v", gotInput)
	}
	if decodeBody(t, w)["message"] != "Task updated successfully" {
		t.Errorf("unexpected message")
	}
}

func TestTaskUpdate_NotFound(t *testing.T) {
	tasks := &fakeTaskUsecase{
		update: func(_ context.Context, _, _ string, _ usecase.UpdateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodPut, "/api/tasks/missing", `{"title":"x"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

// ---- Delete ----

func TestTaskDelete_OK(t *testing.T) {
	tasks := &fakeTaskUsecase{
		delete: func(_ context.Context, id, userID string) error {
			if id != "task-1" || userID != "user-1" {
				t.Errorf("called with (%q, %q)", id, userID)
			}
			return nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodDelete, "/api/tasks/task-1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decodeBody(t, w)["message"] != "Task deleted successfully" {
		t.Errorf("unexpected message")
	}
}

func TestTaskDelete_Repeated_404(t *testing.T) {
	tasks := &fakeTaskUsecase{
		delete: func(_ context.Context, _, _ string) error {
			return domain.ErrTaskNotFound
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodDelete, "/api/tasks/task-1", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

// ---- Stats ----

func TestTaskStats_Shape(t *testing.T) {
	tasks := &fakeTaskUsecase{
		stats: func(_ context.Context, _ string) (*domain.TaskStats, error) {
			return &domain.TaskStats{
				Total: 3,
				ByStatus: map[domain.Status]int{
					domain.StatusToDo:       2,
					domain.StatusInProgress: 1,
					domain.StatusDone:       0,
				},
				ByPriority: map[domain.Priority]int{
					domain.PriorityLow:    0,
					domain.PriorityMedium: 2,
					domain.PriorityHigh:   1,
				},
			}, nil
		},
	}
	r := newTaskRouter(tasks, "user-1")

	w := performJSON(t, r, http.MethodGet, "/api/tasks/stats", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["totalTasks"] != float64(3) {
		t.Errorf("totalTasks = %v", body["totalTasks"])
	}
	statusStats := body["statusStats"].(map[string]any)
	if statusStats["To Do"] != float64(2) || statusStats["Done"] != float64(0) {
		t.Errorf("statusStats = %v, want every status present", statusStats)
	}
	priorityStats := body["priorityStats"].(map[string]any)
	if priorityStats["High"] != float64(1) || priorityStats["Low"] != float64(0) {
		t.Errorf("priorityStats = %v, want every priority present", priorityStats)
	}
}
