package task

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDueDate is returned when a due date is not a real calendar date.
var ErrInvalidDueDate = errors.New("dueDate must be a valid date (YYYY-MM-DD or RFC 3339)")

// ParseDueDate parses a client-supplied due date. An empty string means no
// due date and yields nil. Calendar dates are read as midnight UTC.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	// time.Parse rejects out-of-range days such as 2024-02-30.
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		t = t.UTC()
		return &t, nil
	}

	return nil, ErrInvalidDueDate
}
