package model

import "time"

// Task represents a task item tracked by the service.
type Task struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description *string   `bson:"description,omitempty"`
	DueDate     time.Time `bson:"due_date"`
	StatusID    int64     `bson:"status_id"`
	AssignedTo  *int64    `bson:"assigned_to,omitempty"`
	CreatedBy   int64     `bson:"created_by"`
	UpdatedBy   *int64    `bson:"updated_by,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}
