package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/task-manager-api/domain/apperr"
	domain "github.com/example/task-manager-api/domain/task"
	"github.com/google/uuid"
)

const (
	msgTitleRequired  = "title is required"
	msgInvalidStatus  = "status must be one of pending, in-progress, completed"
	msgFilterRequired = "at least one of title, status or description is required"
	msgTaskNotFound   = "task not found"
)

// CreateInput carries a new task. UserID comes from the verified token.
type CreateInput struct {
	UserID      string
	Title       string
	Description string
	Status      string
	DueDate     string
}

// UpdateInput carries a partial update. Nil fields are left unchanged;
// an empty DueDate clears the due date.
type UpdateInput struct {
	UserID      string
	TaskID      string
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// Fields lists the provided fields by their JSON names.
func (in UpdateInput) Fields() []string {
	fields := make([]string, 0, 4)
	if in.Title != nil {
		fields = append(fields, "title")
	}
	if in.Description != nil {
		fields = append(fields, "description")
	}
	if in.Status != nil {
		fields = append(fields, "status")
	}
	if in.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	return fields
}

// SearchInput carries search filters. Empty filters are ignored.
type SearchInput struct {
	UserID      string
	Title       string
	Status      string
	Description string
}

// TaskService implements task operations scoped to the calling user.
// A task owned by someone else is reported exactly like a missing one.
type TaskService struct {
	repo *TaskRepository
	now  func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and stores a new task owned by in.UserID.
func (s *TaskService) Create(ctx context.Context, in CreateInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Validation(msgTitleRequired)
	}

	status := domain.StatusPending
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			return nil, apperr.Validation(msgInvalidStatus)
		}
	}

	dueDate, err := domain.ParseDueDate(in.DueDate)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	now := s.now()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		DueDate:     dueDate,
		UserID:      in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns every task owned by userID.
func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Get returns one task owned by userID.
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindOwned(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err)
	}
	return task, nil
}

// Update applies the provided fields to a task owned by in.UserID.
// The owner never changes. An update with no fields returns the task as is.
func (s *TaskService) Update(ctx context.Context, in UpdateInput) (*domain.Task, error) {
	changes := make(map[string]any, 5)

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Validation(msgTitleRequired)
		}
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.Valid() {
			return nil, apperr.Validation(msgInvalidStatus)
		}
		changes["status"] = status
	}
	var dueDate *time.Time
	if in.DueDate != nil {
		parsed, err := domain.ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, apperr.Validation(err.Error())
		}
		dueDate = parsed
		if parsed == nil {
			changes["due_date"] = nil
		} else {
			changes["due_date"] = *parsed
		}
	}

	task, err := s.repo.FindOwned(ctx, in.UserID, in.TaskID)
	if err != nil {
		return nil, notFound(err)
	}
	if len(changes) == 0 {
		return task, nil
	}

	now := s.now()
	changes["updated_at"] = now
	if err := s.repo.Update(ctx, in.UserID, in.TaskID, changes); err != nil {
		return nil, notFound(err)
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = domain.Status(*in.Status)
	}
	if in.DueDate != nil {
		task.DueDate = dueDate
	}
	task.UpdatedAt = now
	return task, nil
}

// Delete removes a task owned by userID.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.repo.DeleteOwned(ctx, userID, taskID); err != nil {
		return notFound(err)
	}
	return nil
}

// Search returns the caller's tasks matching all given filters.
func (s *TaskService) Search(ctx context.Context, in SearchInput) ([]domain.Task, error) {
	if in.Title == "" && in.Status == "" && in.Description == "" {
		return nil, apperr.Validation(msgFilterRequired)
	}

	status := domain.Status(in.Status)
	if in.Status != "" && !status.Valid() {
		return nil, apperr.Validation(msgInvalidStatus)
	}

	return s.repo.Search(ctx, SearchFilter{
		UserID:      in.UserID,
		Title:       in.Title,
		Status:      status,
		Description: in.Description,
	})
}

// notFound classifies ErrTaskNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, ErrTaskNotFound) {
		return apperr.NotFound(msgTaskNotFound)
	}
	return fmt.Errorf("task store: %w", err)
}
