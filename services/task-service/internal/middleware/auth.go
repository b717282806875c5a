package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/usecase"
	"github.com/vasapolrittideah/task-management-api/shared/auth"
	"github.com/vasapolrittideah/task-management-api/shared/metrics"
)

type userContextKey struct{}

// Authenticate rejects requests without a valid bearer token and attaches the
// resolved user to the request context otherwise.
func Authenticate(authenticator usecase.Authenticator, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				metrics.RecordAuth(metrics.OutcomeRejected)
				unauthorized(w)
				return
			}

			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("request_id", RequestIDFromContext(r.Context())).
					Msg("rejected bearer token")
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(model.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeFailure(w, http.StatusUnauthorized, "Unauthorized")
}
