package domain

import "time"

// Task priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is a checklist item for trip preparation.
// AssignedTo is a weak reference to a User id, empty when unassigned.
// DueDate is a "2006-01-02" string, empty when the task has no deadline.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DueDate     string    `json:"dueDate"`
	Priority    string    `json:"priority"`
	AssignedTo  string    `json:"assignedTo"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PriorityRank maps a priority to its sort rank (high sorts first).
// Unknown priorities sort last.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
