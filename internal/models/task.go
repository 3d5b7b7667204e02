// internal/models/task.go
package models

import "time"

// TaskStatus defines the board columns a task can live in.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusOngoing   TaskStatus = "ongoing"
	StatusCompleted TaskStatus = "completed"
)

// IsValid reports whether s is one of the known board statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Task represents a unit of billable work on a client board.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ClientID    *int64     `json:"client_id,omitempty"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Paid        bool       `json:"paid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	UserID   *int64
	ClientID *int64
	Status   *TaskStatus
}

// TaskCounts is the per-client aggregate: tasks per column plus how many
// completed ones are still unpaid.
type TaskCounts struct {
	Pending         int `json:"pending"`
	Ongoing         int `json:"ongoing"`
	Completed       int `json:"completed"`
	UnpaidCompleted int `json:"unpaid_completed"`
}
