package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/payload"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
)

type taskStatusHTTPHandler struct {
	taskStatusUsecase usecase.TaskStatusUsecase
	logger            *zerolog.Logger
}

func newTaskStatusHTTPHandler(taskStatusUsecase usecase.TaskStatusUsecase, logger *zerolog.Logger) *taskStatusHTTPHandler {
	return &taskStatusHTTPHandler{
		taskStatusUsecase: taskStatusUsecase,
		logger:            logger,
	}
}

func (h *taskStatusHTTPHandler) ListTaskStatuses(w http.ResponseWriter, r *http.Request, _ model.User) {
	statuses, err := h.taskStatusUsecase.ListTaskStatuses(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list task statuses")
		writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	resp := make([]payload.TaskStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		resp = append(resp, payload.TaskStatusResponse{ID: s.ID, Name: s.Name})
	}

	writeSuccess(w, http.StatusOK, resp, "")
}
