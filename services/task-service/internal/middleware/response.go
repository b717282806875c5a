package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/payload"
)

func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload.Fail(statusCode, message))
}
