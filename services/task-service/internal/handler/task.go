package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/payload"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
	"github.com/vasapolrittideah/task-management-api/shared/validator"
)

const msgTaskNotFound = "Task not found."

type taskHTTPHandler struct {
	taskUsecase usecase.TaskUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func newTaskHTTPHandler(
	taskUsecase usecase.TaskUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *taskHTTPHandler {
	return &taskHTTPHandler{
		taskUsecase: taskUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *taskHTTPHandler) ListTasks(w http.ResponseWriter, r *http.Request, _ model.User) {
	statusID, err := queryInt64(r, "statusId")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid statusId.")
		return
	}

	assignedTo, err := queryInt64(r, "assignedTo")
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid assignedTo.")
		return
	}

	orderDir := r.URL.Query().Get("orderDir")
	if orderDir != "" && !strings.EqualFold(orderDir, "asc") && !strings.EqualFold(orderDir, "desc") {
		writeFail(w, http.StatusBadRequest, "Invalid orderDir.")
		return
	}

	details, err := h.taskUsecase.ListTasks(r.Context(), usecase.ListTasksParams{
		StatusID:   statusID,
		AssignedTo: assignedTo,
		OrderBy:    r.URL.Query().Get("orderBy"),
		OrderDir:   orderDir,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tasks")
		writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	resp := make([]payload.TaskResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, toTaskResponse(d))
	}

	writeSuccess(w, http.StatusOK, resp, "")
}

func (h *taskHTTPHandler) GetTask(w http.ResponseWriter, r *http.Request, _ model.User) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid task id.")
		return
	}

	details, err := h.taskUsecase.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeFail(w, http.StatusNotFound, msgTaskNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("task_id", id).Msg("failed to get task")
		writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	writeSuccess(w, http.StatusOK, toTaskResponse(*details), "")
}

func (h *taskHTTPHandler) CreateTask(w http.ResponseWriter, r *http.Request, user model.User) {
	var req payload.CreateTaskRequest
	if msg, ok := decodeAndValidate(r, h.validator, &req); !ok {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.taskUsecase.CreateTask(r.Context(), usecase.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	}, user.ID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to create task")

		switch {
		case errors.Is(err, usecase.ErrAssigneeNotFound):
			writeFail(w, http.StatusBadRequest, "Assigned user not found.")
		default:
			writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		}
		return
	}

	writeSuccess(w, http.StatusCreated, true, "Task created successfully.")
}

func (h *taskHTTPHandler) UpdateTask(w http.ResponseWriter, r *http.Request, user model.User) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid task id.")
		return
	}

	var req payload.UpdateTaskRequest
	if msg, ok := decodeAndValidate(r, h.validator, &req); !ok {
		writeFail(w, http.StatusBadRequest, msg)
		return
	}

	_, err = h.taskUsecase.UpdateTask(r.Context(), id, usecase.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		StatusID:    req.StatusID,
		AssignedTo:  req.AssignedTo,
	}, user.ID)
	if err != nil {
		h.logger.Error().Err(err).Int64("task_id", id).Msg("failed to update task")

		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			writeFail(w, http.StatusNotFound, msgTaskNotFound)
		case errors.Is(err, usecase.ErrInvalidTaskStatus):
			writeFail(w, http.StatusBadRequest, "Invalid status.")
		case errors.Is(err, usecase.ErrAssigneeNotFound):
			writeFail(w, http.StatusBadRequest, "Assigned user not found.")
		default:
			writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		}
		return
	}

	writeSuccess(w, http.StatusOK, true, "Task updated successfully.")
}

func (h *taskHTTPHandler) DeleteTask(w http.ResponseWriter, r *http.Request, _ model.User) {
	id, err := pathID(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid task id.")
		return
	}

	if err := h.taskUsecase.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeFail(w, http.StatusNotFound, msgTaskNotFound)
			return
		}
		h.logger.Error().Err(err).Int64("task_id", id).Msg("failed to delete task")
		writeFail(w, http.StatusInternalServerError, msgUnexpectedError)
		return
	}

	writeSuccess(w, http.StatusOK, true, "Task deleted successfully.")
}

func toTaskResponse(d usecase.TaskDetails) payload.TaskResponse {
	return payload.TaskResponse{
		ID:             d.Task.ID,
		Title:          d.Task.Title,
		Description:    d.Task.Description,
		DueDate:        d.Task.DueDate,
		StatusID:       d.Task.StatusID,
		StatusName:     d.StatusName,
		AssignedTo:     d.Task.AssignedTo,
		AssignedToName: d.AssignedToName,
		CreatedBy:      d.Task.CreatedBy,
		UpdatedBy:      d.Task.UpdatedBy,
		CreatedAt:      d.Task.CreatedAt,
		UpdatedAt:      d.Task.UpdatedAt,
	}
}
