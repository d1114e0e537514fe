package api

import (
	"encoding/json"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/modules/activity"
)

// CredentialsRequest is the body of signup and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest is the body of POST /tasks. The owner always comes
// from the token, never from the body.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Only fields present in
// the body are changed.
type UpdateTaskRequest struct {
	Title       OptionalString `json:"title"`
	Description OptionalString `json:"description"`
	Status      OptionalString `json:"status"`
	DueDate     OptionalString `json:"dueDate"`
}

// OptionalString records whether a JSON field was present. An explicit
// null counts as present and empty.
type OptionalString struct {
	Set   bool
	Value string
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = ""
		return nil
	}
	return json.Unmarshal(data, &s.Value)
}

// Ptr returns nil when the field was absent.
func (s OptionalString) Ptr() *string {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// CreateTaskResponse is returned after a task is created.
type CreateTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}

// TaskListResponse is returned by list and search.
type TaskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// ActivityListResponse is the body of GET /activity.
type ActivityListResponse struct {
	Activity []activity.Entry `json:"activity"`
	Total    int              `json:"total"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
