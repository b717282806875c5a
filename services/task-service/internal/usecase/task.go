package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
)

var (
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrAssigneeNotFound  = errors.New("assigned user not found")
)

// TaskUsecase defines the business logic for task operations.
type TaskUsecase interface {
	ListTasks(ctx context.Context, params ListTasksParams) ([]TaskDetails, error)
	GetTask(ctx context.Context, id int64) (*TaskDetails, error)
	CreateTask(ctx context.Context, params CreateTaskParams, createdBy int64) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, params UpdateTaskParams, updatedBy int64) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// TaskDetails is a task joined with the names of its status and assignee.
type TaskDetails struct {
	Task           *model.Task
	StatusName     string
	AssignedToName *string
}

// ListTasksParams defines the parameters for listing tasks.
// OrderBy accepts DueDate, Title, CreatedAt or StatusId; OrderDir accepts ASC or DESC.
type ListTasksParams struct {
	StatusID   *int64
	AssignedTo *int64
	OrderBy    string
	OrderDir   string
}

// CreateTaskParams defines the parameters for creating a task.
type CreateTaskParams struct {
	Title       string
	Description *string
	DueDate     time.Time
	AssignedTo  *int64
}

// UpdateTaskParams defines the optional fields of a task update.
// Empty titles and descriptions leave the stored values untouched.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	StatusID    *int64
	AssignedTo  *int64
}

type taskUsecase struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.TaskStatusRepository
	userRepo   repository.UserRepository
}

func NewTaskUsecase(
	taskRepo repository.TaskRepository,
	statusRepo repository.TaskStatusRepository,
	userRepo repository.UserRepository,
) TaskUsecase {
	return &taskUsecase{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		userRepo:   userRepo,
	}
}

func (u *taskUsecase) ListTasks(ctx context.Context, params ListTasksParams) ([]TaskDetails, error) {
	tasks, err := u.taskRepo.ListTasks(ctx, repository.FilterTasksParams{
		StatusID:   params.StatusID,
		AssignedTo: params.AssignedTo,
		SortBy:     taskSortField(params.OrderBy),
		SortDesc:   strings.EqualFold(params.OrderDir, "desc"),
	})
	if err != nil {
		return nil, err
	}

	return u.withDetails(ctx, tasks)
}

func (u *taskUsecase) GetTask(ctx context.Context, id int64) (*TaskDetails, error) {
	task, err := u.taskRepo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := u.withDetails(ctx, []*model.Task{task})
	if err != nil {
		return nil, err
	}

	return &details[0], nil
}

func (u *taskUsecase) CreateTask(ctx context.Context, params CreateTaskParams, createdBy int64) (*model.Task, error) {
	if err := u.checkAssignee(ctx, params.AssignedTo); err != nil {
		return nil, err
	}

	return u.taskRepo.CreateTask(ctx, &model.Task{
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		StatusID:    model.TaskStatusPending,
		AssignedTo:  params.AssignedTo,
		CreatedBy:   createdBy,
	})
}

func (u *taskUsecase) UpdateTask(
	ctx context.Context,
	id int64,
	params UpdateTaskParams,
	updatedBy int64,
) (*model.Task, error) {
	task, err := u.taskRepo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil && *params.Title != "" {
		task.Title = *params.Title
	}
	if params.Description != nil && *params.Description != "" {
		task.Description = params.Description
	}
	if params.DueDate != nil {
		task.DueDate = *params.DueDate
	}
	if params.StatusID != nil {
		if _, err := u.statusRepo.GetTaskStatus(ctx, *params.StatusID); err != nil {
			if errors.Is(err, repository.ErrTaskStatusNotFound) {
				return nil, ErrInvalidTaskStatus
			}
			return nil, err
		}
		task.StatusID = *params.StatusID
	}
	if params.AssignedTo != nil {
		if err := u.checkAssignee(ctx, params.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = params.AssignedTo
	}

	task.UpdatedBy = &updatedBy

	return u.taskRepo.UpdateTask(ctx, task)
}

func (u *taskUsecase) DeleteTask(ctx context.Context, id int64) error {
	return u.taskRepo.DeleteTask(ctx, id)
}

func (u *taskUsecase) checkAssignee(ctx context.Context, assignedTo *int64) error {
	if assignedTo == nil {
		return nil
	}

	if _, err := u.userRepo.GetUser(ctx, *assignedTo); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrAssigneeNotFound
		}
		return err
	}

	return nil
}

func (u *taskUsecase) withDetails(ctx context.Context, tasks []*model.Task) ([]TaskDetails, error) {
	if len(tasks) == 0 {
		return []TaskDetails{}, nil
	}

	statuses, err := u.statusRepo.ListTaskStatuses(ctx)
	if err != nil {
		return nil, err
	}
	statusNames := make(map[int64]string, len(statuses))
	for _, s := range statuses {
		statusNames[s.ID] = s.Name
	}

	seen := make(map[int64]struct{})
	var assigneeIDs []int64
	for _, t := range tasks {
		if t.AssignedTo == nil {
			continue
		}
		if _, ok := seen[*t.AssignedTo]; !ok {
			seen[*t.AssignedTo] = struct{}{}
			assigneeIDs = append(assigneeIDs, *t.AssignedTo)
		}
	}

	userNames := make(map[int64]string, len(assigneeIDs))
	if len(assigneeIDs) > 0 {
		users, err := u.userRepo.GetUsersByIDs(ctx, assigneeIDs)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			userNames[user.ID] = user.DisplayName
		}
	}

	details := make([]TaskDetails, 0, len(tasks))
	for _, t := range tasks {
		d := TaskDetails{
			Task:       t,
			StatusName: statusNames[t.StatusID],
		}
		if t.AssignedTo != nil {
			if name, ok := userNames[*t.AssignedTo]; ok {
				d.AssignedToName = &name
			}
		}
		details = append(details, d)
	}

	return details, nil
}

func taskSortField(orderBy string) string {
	switch strings.ToLower(orderBy) {
	case "title":
		return repository.TaskSortTitle
	case "createdat":
		return repository.TaskSortCreatedAt
	case "statusid":
		return repository.TaskSortStatusID
	default:
		return repository.TaskSortDueDate
	}
}
