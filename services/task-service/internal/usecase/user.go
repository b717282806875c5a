package usecase

import (
	"context"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
)

// UserUsecase exposes read access to local users.
type UserUsecase interface {
	ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error)
}

type userUsecase struct {
	userRepo repository.UserRepository
}

func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx, params)
}
