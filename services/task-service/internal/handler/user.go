package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/payload"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
)

type userHTTPHandler struct {
	userUsecase usecase.UserUsecase
	logger      *zerolog.Logger
}

func newUserHTTPHandler(userUsecase usecase.UserUsecase, logger *zerolog.Logger) *userHTTPHandler {
	return &userHTTPHandler{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

func (h *userHTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request, _ model.User) {
	var params repository.FilterUsersParams

	limit, err := queryInt64(r, "limit")
	if err != nil || (limit != nil && *limit < 0) {
		writeFail(w, http.StatusBadRequest, "Invalid limit.")
		return
	}
	if limit != nil {
		params.Limit = *limit
	}

	offset, err := queryInt64(r, "offset")
	if err != nil || (offset != nil && *offset < 0) {
		writeFail(w, http.StatusBadRequest, "Invalid offset.")
		return
	}
	if offset != nil {
		params.Offset = *offset
	}

	users, err := h.userUsecase.ListUsers(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	resp := make([]payload.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, payload.UserResponse{ID: u.ID, DisplayName: u.DisplayName})
	}

	writeSuccess(w, http.StatusOK, resp, "")
}

func (h *userHTTPHandler) GetCurrentUser(w http.ResponseWriter, _ *http.Request, user model.User) {
	writeSuccess(w, http.StatusOK, payload.CurrentUserResponse{
		ID:          user.ID,
		ExternalID:  user.ExternalID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, "")
}
