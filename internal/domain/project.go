package domain

import (
	"errors"
	"time"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrNotProjectOwner  = errors.New("only the project owner can do this")
	ErrInvalidDateRange = errors.New("end date is before start date")
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectOnHold     ProjectStatus = "On Hold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Active is false for finished projects.
func (s ProjectStatus) Active() bool {
	return s != ProjectCompleted && s != ProjectCancelled
}

type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Members     []string // user IDs
	Tags        []string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VisibleTo reports whether userID owns the project or is one of its members.
func (p *Project) VisibleTo(userID string) bool {
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// ProjectPatch carries a partial update; nil fields are left unchanged.
// ClearStartDate/ClearEndDate null out the respective date.
type ProjectPatch struct {
	Name           *string
	Description    *string
	Status         *ProjectStatus
	StartDate      *time.Time
	ClearStartDate bool
	EndDate        *time.Time
	ClearEndDate   bool
	Members        *[]string
	Tags           *[]string
}
