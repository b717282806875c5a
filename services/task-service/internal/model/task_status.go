package model

// TaskStatus represents one state a task can be in.
type TaskStatus struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

const (
	TaskStatusPending    int64 = 1
	TaskStatusInProgress int64 = 2
	TaskStatusCompleted  int64 = 3
)

// DefaultTaskStatuses returns the statuses seeded at startup.
func DefaultTaskStatuses() []TaskStatus {
	return []TaskStatus{
		{ID: TaskStatusPending, Name: "Pending"},
		{ID: TaskStatusInProgress, Name: "In Progress"},
		{ID: TaskStatusCompleted, Name: "Completed"},
	}
}
