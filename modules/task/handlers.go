package task

import (
	"context"
	"errors"
	"time"

	"github.com/example/task-manager-api/domain/apperr"
	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Create(ctx, CreateInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return domain.Task{}, m.reportError("create-task", err)
	}

	m.logger.Info("Task created", "task_id", task.ID, "user_id", task.UserID)
	m.publishCreated(task)
	return *task, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, m.reportError("list-tasks", err)
	}
	return newListTasksResponse(tasks), nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Get(ctx, req.UserID, req.TaskID)
	if err != nil {
		return domain.Task{}, m.reportError("get-task", err)
	}
	return *task, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	in := UpdateInput{
		UserID:      req.UserID,
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	task, err := m.service.Update(ctx, in)
	if err != nil {
		return domain.Task{}, m.reportError("update-task", err)
	}

	if fields := in.Fields(); len(fields) > 0 {
		m.logger.Info("Task updated", "task_id", task.ID, "fields", fields)
		m.publishUpdated(task, fields)
	}
	return *task, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false}, m.reportError("delete-task", err)
	}

	m.logger.Info("Task deleted", "task_id", req.TaskID, "user_id", req.UserID)
	m.publishDeleted(req.TaskID, req.UserID)
	return DeleteTaskResponse{Deleted: true}, nil
}

// searchTasks handles the search-tasks service request.
func (m *TaskModule) searchTasks(ctx context.Context, req SearchTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.Search(ctx, SearchInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		return ListTasksResponse{}, m.reportError("search-tasks", err)
	}
	return newListTasksResponse(tasks), nil
}

// Event publishing is best-effort; failures are logged and never fail the operation.

func (m *TaskModule) publishCreated(task *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskCreated event", "task_id", task.ID, "error", err)
	}
}

func (m *TaskModule) publishUpdated(task *domain.Task, fields []string) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskUpdatedEvent{
		TaskID:    task.ID,
		UserID:    task.UserID,
		Status:    string(task.Status),
		Fields:    fields,
		UpdatedAt: task.UpdatedAt,
	}
	if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskUpdated event", "task_id", task.ID, "error", err)
	}
}

func (m *TaskModule) publishDeleted(taskID, userID string) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    taskID,
		UserID:    userID,
		DeletedAt: time.Now().UTC(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish TaskDeleted event", "task_id", taskID, "error", err)
	}
}

// reportError logs unclassified failures and returns err unchanged.
func (m *TaskModule) reportError(op string, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		m.logger.Error("Task operation failed", "operation", op, "error", err)
		return apperr.Internal()
	}
	return err
}
