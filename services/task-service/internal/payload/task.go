package payload

import "time"

type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	DueDate     time.Time `json:"dueDate"     validate:"required"`
	AssignedTo  *int64    `json:"assignedTo"  validate:"omitempty,gt=0"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate"`
	StatusID    *int64     `json:"statusId"    validate:"omitempty,gt=0"`
	AssignedTo  *int64     `json:"assignedTo"  validate:"omitempty,gt=0"`
}

type TaskResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	DueDate        time.Time `json:"dueDate"`
	StatusID       int64     `json:"statusId"`
	StatusName     string    `json:"statusName"`
	AssignedTo     *int64    `json:"assignedTo"`
	AssignedToName *string   `json:"assignedToName"`
	CreatedBy      int64     `json:"createdBy"`
	UpdatedBy      *int64    `json:"updatedBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type TaskStatusResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
