package api

import (
	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/activity"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth     auth.AuthPort
	tasks    task.TaskPort
	activity activity.ActivityPort
	logger   types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort, activityPort activity.ActivityPort, logger types.Logger) *Handlers {
	return &Handlers{
		auth:     authPort,
		tasks:    taskPort,
		activity: activityPort,
		logger:   logger,
	}
}

// Welcome handles GET /.
func (h *Handlers) Welcome(c *fiber.Ctx) error {
	return c.JSON(MessageResponse{Message: "Welcome to Task Management System!"})
}

// Health handles GET /health.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

// Signup handles POST /users/signup.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	resp, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(SignupResponse{
		Message: "User created successfully",
		UserID:  resp.ID,
	})
}

// Login handles POST /users/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	resp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(LoginResponse{Token: resp.Token})
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.ListTasks(c.UserContext(), currentUserID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(toTaskList(resp))
}

// SearchTasks handles GET /tasks/search.
func (h *Handlers) SearchTasks(c *fiber.Ctx) error {
	resp, err := h.tasks.SearchTasks(c.UserContext(), &task.SearchTasksRequest{
		UserID:      currentUserID(c),
		Title:       c.Query("title"),
		Status:      c.Query("status"),
		Description: c.Query("description"),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(toTaskList(resp))
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	t, err := h.tasks.GetTask(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(t)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	t, err := h.tasks.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateTaskResponse{
		Message: "Task created successfully",
		TaskID:  t.ID,
	})
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}

	_, err := h.tasks.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		UserID:      currentUserID(c),
		TaskID:      c.Params("id"),
		Title:       req.Title.Ptr(),
		Description: req.Description.Ptr(),
		Status:      req.Status.Ptr(),
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(MessageResponse{Message: "Task updated successfully"})
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.UserContext(), currentUserID(c), c.Params("id")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(MessageResponse{Message: "Task deleted successfully"})
}

// ListActivity handles GET /activity.
func (h *Handlers) ListActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return badRequest(c, msgInvalidLimit)
	}

	resp, err := h.activity.ListActivity(c.UserContext(), currentUserID(c), limit)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	list := ActivityListResponse{Activity: resp.Entries, Total: resp.Total}
	if list.Activity == nil {
		list.Activity = []activity.Entry{}
	}
	return c.JSON(list)
}

func toTaskList(resp *task.ListTasksResponse) TaskListResponse {
	list := TaskListResponse{Tasks: resp.Tasks, Total: resp.Total}
	if list.Tasks == nil {
		list.Tasks = []domain.Task{}
	}
	return list
}
