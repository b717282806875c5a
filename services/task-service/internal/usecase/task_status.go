package usecase

import (
	"context"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
)

// TaskStatusUsecase lists the statuses a task can take.
type TaskStatusUsecase interface {
	ListTaskStatuses(ctx context.Context) ([]*model.TaskStatus, error)
}

type taskStatusUsecase struct {
	statusRepo repository.TaskStatusRepository
}

func NewTaskStatusUsecase(statusRepo repository.TaskStatusRepository) TaskStatusUsecase {
	return &taskStatusUsecase{statusRepo: statusRepo}
}

func (u *taskStatusUsecase) ListTaskStatuses(ctx context.Context) ([]*model.TaskStatus, error) {
	return u.statusRepo.ListTaskStatuses(ctx)
}
