package activity

import "context"

// ActivityPort is how other modules read the activity log.
type ActivityPort interface {
	ListActivity(ctx context.Context, userID string, limit int) (*ListActivityResponse, error)
}

// ListActivityRequest asks for a user's most recent entries.
// A non-positive Limit returns everything kept for the user.
type ListActivityRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit,omitempty"`
}

// ListActivityResponse carries a user's entries, newest first.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}
