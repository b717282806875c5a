package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/middleware"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/payload"
	"github.com/vasapolrittideah/task-management-api/shared/validator"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgUnexpectedError    = "An unexpected error occurred."
)

var errInvalidID = errors.New("invalid id")

// authedHandlerFunc receives the caller resolved by the auth middleware explicitly.
type authedHandlerFunc func(w http.ResponseWriter, r *http.Request, user model.User)

func authed(fn authedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.CurrentUser(r.Context())
		if !ok {
			writeFail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		fn(w, r, user)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess[T any](w http.ResponseWriter, statusCode int, data T, message string) {
	writeJSON(w, statusCode, payload.Success(statusCode, data, message))
}

func writeFail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, payload.Fail(statusCode, message))
}

// decodeAndValidate reads a JSON body into dst and runs the struct validator on it.
// The returned message is safe to send to the client.
func decodeAndValidate(r *http.Request, v *validator.Validator, dst any) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return msgInvalidRequestBody, false
	}

	if err := v.Struct(dst); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error(), false
		}
		return msgInvalidRequestBody, false
	}

	return "", true
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// queryInt64 parses an optional positive integer query parameter.
func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
