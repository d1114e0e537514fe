package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusInProgress, true},
		{StatusCompleted, true},
		{"archived", false},
		{"Pending", false},
		{"in_progress", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Valid())
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *time.Time
		wantErr bool
	}{
		{
			name:  "empty means absent",
			value: "",
			want:  nil,
		},
		{
			name:  "whitespace means absent",
			value: "   ",
			want:  nil,
		},
		{
			name:  "calendar date",
			value: "2025-03-14",
			want:  ptr(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "rfc3339 timestamp is normalized to utc",
			value: "2025-03-14T10:30:00+02:00",
			want:  ptr(time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)),
		},
		{
			name:  "leap day",
			value: "2024-02-29",
			want:  ptr(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:    "not a date",
			value:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "impossible day",
			value:   "2023-02-29",
			wantErr: true,
		},
		{
			name:    "month out of range",
			value:   "2025-13-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
