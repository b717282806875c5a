package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/middleware"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
	"github.com/vasapolrittideah/task-management-api/shared/validator"
)

// RouterConfig holds everything the HTTP surface depends on.
type RouterConfig struct {
	Authenticator     usecase.Authenticator
	TaskUsecase       usecase.TaskUsecase
	TaskStatusUsecase usecase.TaskStatusUsecase
	UserUsecase       usecase.UserUsecase
	Validator         *validator.Validator
	AllowedOrigins    []string
	Logger            *zerolog.Logger
}

// NewRouter builds the service's HTTP handler. Everything under /api requires a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	tasks := newTaskHTTPHandler(cfg.TaskUsecase, cfg.Validator, cfg.Logger)
	statuses := newTaskStatusHTTPHandler(cfg.TaskStatusUsecase, cfg.Logger)
	users := newUserHTTPHandler(cfg.UserUsecase, cfg.Logger)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.AccessLog(cfg.Logger),
		middleware.Recoverer(cfg.Logger),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, "ok", "")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.Authenticator, cfg.Logger))

		r.Get("/tasks", authed(tasks.ListTasks))
		r.Post("/tasks", authed(tasks.CreateTask))
		r.Get("/tasks/{id}", authed(tasks.GetTask))
		r.Put("/tasks/{id}", authed(tasks.UpdateTask))
		r.Delete("/tasks/{id}", authed(tasks.DeleteTask))

		r.Get("/task-statuses", authed(statuses.ListTaskStatuses))

		r.Get("/users", authed(users.ListUsers))
		r.Get("/users/me", authed(users.GetCurrentUser))
	})

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	return c.Handler(r)
}
