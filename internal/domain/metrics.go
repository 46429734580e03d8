package domain

type ProjectCompletion struct {
	ID             string
	Name           string
	CompletionRate float64
}

type UserMetrics struct {
	TotalProjects          int
	ActiveProjects         int
	ActiveTasks            int
	CompletedTasks         int
	TeamMembers            int
	OverallCompletionRate  float64
	ProjectsWithCompletion []ProjectCompletion
}

// UserSummary is one row of the team directory.
type UserSummary struct {
	ID            string
	Name          string
	Email         string
	ProjectsCount int
	TasksCount    int
}
