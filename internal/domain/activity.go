package domain

import "time"

type ActivityType string

const (
	ActivityProject ActivityType = "project"
	ActivityTask    ActivityType = "task"
)

type ActivityAction string

const (
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionDeleted ActivityAction = "deleted"
)

type Activity struct {
	ID         string
	Type       ActivityType
	Action     ActivityAction
	TargetType string
	TargetName string
	ActorID    string
	ActorName  string
	Timestamp  time.Time
}
