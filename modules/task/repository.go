package task

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/task-manager-api/domain/task"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task does not exist or belongs to another user.
var ErrTaskNotFound = errors.New("task not found")

// SearchFilter narrows a search. Empty fields are ignored; the rest are ANDed.
type SearchFilter struct {
	UserID      string
	Title       string
	Status      domain.Status
	Description string
}

// TaskRepository provides owner-scoped access to task storage.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *TaskRepository) Migrate() error {
	return r.db.AutoMigrate(&domain.Task{})
}

// Create saves a new task.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindOwned retrieves a task by ID if userID owns it.
func (r *TaskRepository) FindOwned(ctx context.Context, userID, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// ListByOwner retrieves all tasks owned by userID, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the given column changes to a task owned by userID.
func (r *TaskRepository) Update(ctx context.Context, userID, id string, changes map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteOwned removes a task owned by userID.
func (r *TaskRepository) DeleteOwned(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Task{})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Search returns the caller's tasks matching every non-empty filter field.
// Owner and status filter in SQL. SQLite's LOWER folds ASCII only, so title
// and description are matched here under Unicode case folding.
func (r *TaskRepository) Search(ctx context.Context, filter SearchFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	candidates := make([]domain.Task, 0)
	if err := query.Order("created_at DESC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	title := foldCase(filter.Title)
	description := foldCase(filter.Description)

	tasks := make([]domain.Task, 0, len(candidates))
	for _, task := range candidates {
		if title != "" && !strings.Contains(foldCase(task.Title), title) {
			continue
		}
		if description != "" && !strings.Contains(foldCase(task.Description), description) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// foldCase builds a Caser per call; Casers must not be shared across goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}
