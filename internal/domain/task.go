package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority value")
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	AssignedTo  *string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Assignee is populated by list queries only.
	Assignee *Assignee
}

type Assignee struct {
	ID    string
	Name  string
	Email string
}

type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *Priority
	AssignedTo   *string // "" unassigns
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// TaskCounts is the per-project tally used by the metrics dashboard.
type TaskCounts struct {
	Total int
	Done  int
}

// DueTask is a reminder candidate joined with its assignee.
type DueTask struct {
	TaskID        string
	Title         string
	DueDate       time.Time
	AssigneeName  string
	AssigneeEmail string
}
