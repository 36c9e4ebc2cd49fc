package model

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is an admin-originated assignment. Exactly one of AssigneeID or
// Committee is set: either a single member or every member of a committee.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	Committee   string       `json:"committee,omitempty"`
	DueDate     time.Time    `json:"due_date"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority,omitempty"`
	ResultText  string       `json:"result_text,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
