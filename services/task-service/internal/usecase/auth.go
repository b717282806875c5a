package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
	"github.com/vasapolrittideah/task-management-api/shared/metrics"
	"github.com/vasapolrittideah/task-management-api/shared/provider"
)

// DefaultIdentityCacheTTL bounds how long a resolved identity is trusted without
// asking the identity provider again.
const DefaultIdentityCacheTTL = 5 * time.Minute

// resolveTimeout bounds a shared resolution, which no longer follows any single
// caller's context.
const resolveTimeout = 30 * time.Second

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrIncompleteIdentity = errors.New("validated identity has no external id or email")
)

// IdentityCache maps raw bearer tokens to previously resolved users.
type IdentityCache interface {
	Get(ctx context.Context, token string) (model.User, bool, error)
	Set(ctx context.Context, token string, user model.User, ttl time.Duration) error
}

// Authenticator resolves a bearer token to a local user.
type Authenticator interface {
	// Authenticate returns the user owning token. Any error means the caller is not authorized.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type authenticator struct {
	validator provider.TokenValidator
	userRepo  repository.UserRepository
	cache     IdentityCache
	cacheTTL  time.Duration
	logger    *zerolog.Logger
	inflight  singleflight.Group
	now       func() time.Time
}

func NewAuthenticator(
	validator provider.TokenValidator,
	userRepo repository.UserRepository,
	cache IdentityCache,
	cacheTTL time.Duration,
	logger *zerolog.Logger,
) Authenticator {
	if cacheTTL <= 0 {
		cacheTTL = DefaultIdentityCacheTTL
	}

	return &authenticator{
		validator: validator,
		userRepo:  userRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

func (a *authenticator) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		metrics.RecordAuth(metrics.OutcomeRejected)
		return nil, ErrInvalidToken
	}

	if user, ok := a.lookupCache(ctx, token); ok {
		metrics.RecordAuth(metrics.OutcomeCacheHit)
		return &user, nil
	}

	// Concurrent misses for one token share a single validation and reconciliation.
	// Each caller stops waiting when its own context ends; the shared work keeps going
	// for the others.
	ch := a.inflight.DoChan(token, func() (any, error) {
		resolveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resolveTimeout)
		defer cancel()
		return a.resolve(resolveCtx, token)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		metrics.RecordAuth(metrics.OutcomeError)
		return nil, ctx.Err()
	case res = <-ch:
	}

	v, err := res.Val, res.Err
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrIncompleteIdentity) {
			metrics.RecordAuth(metrics.OutcomeRejected)
		} else {
			metrics.RecordAuth(metrics.OutcomeError)
		}
		return nil, err
	}

	metrics.RecordAuth(metrics.OutcomeAuthorized)
	user := v.(model.User)
	return &user, nil
}

func (a *authenticator) lookupCache(ctx context.Context, token string) (model.User, bool) {
	user, found, err := a.cache.Get(ctx, token)
	if err != nil {
		a.logger.Warn().Err(err).Msg("identity cache lookup failed, treating as miss")
		return model.User{}, false
	}

	return user, found
}

func (a *authenticator) resolve(ctx context.Context, token string) (model.User, error) {
	start := time.Now()
	result, err := a.validator.ValidateToken(ctx, token)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordTokenValidation("error", elapsed)
		return model.User{}, fmt.Errorf("token validation failed: %w", err)
	}

	if !result.Valid {
		metrics.RecordTokenValidation("invalid", elapsed)
		return model.User{}, ErrInvalidToken
	}
	metrics.RecordTokenValidation("valid", elapsed)

	if result.ExternalID == "" || result.Email == "" {
		return model.User{}, ErrIncompleteIdentity
	}

	user, err := a.reconcile(ctx, result)
	if err != nil {
		return model.User{}, err
	}

	if err := a.cache.Set(ctx, token, *user, a.cacheTTL); err != nil {
		a.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to cache resolved identity")
	}

	return *user, nil
}

// reconcile maps a validated identity onto the local user store, creating the user on
// first sight and refreshing display name and email when the provider reports new values.
func (a *authenticator) reconcile(ctx context.Context, result *provider.ValidationResult) (*model.User, error) {
	user, err := a.userRepo.GetUserByExternalID(ctx, result.ExternalID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return a.createUser(ctx, result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return a.refreshUser(ctx, user, result)
}

func (a *authenticator) createUser(ctx context.Context, result *provider.ValidationResult) (*model.User, error) {
	user, err := a.userRepo.CreateUser(ctx, &model.User{
		ExternalID:  result.ExternalID,
		DisplayName: result.DisplayName,
		Email:       result.Email,
		CreatedAt:   a.now().UTC(),
	})
	if errors.Is(err, repository.ErrUserAlreadyExists) {
		// Another instance created the row between our lookup and insert.
		existing, err := a.userRepo.GetUserByExternalID(ctx, result.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		return a.refreshUser(ctx, existing, result)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.RecordReconciliation(metrics.ActionCreated)
	a.logger.Info().
		Int64("user_id", user.ID).
		Str("external_id", user.ExternalID).
		Msg("created user for new external identity")

	return user, nil
}

func (a *authenticator) refreshUser(
	ctx context.Context,
	user *model.User,
	result *provider.ValidationResult,
) (*model.User, error) {
	if user.DisplayName == result.DisplayName && user.Email == result.Email {
		metrics.RecordReconciliation(metrics.ActionUnchanged)
		return user, nil
	}

	updated, err := a.userRepo.UpdateUser(ctx, user.ID, repository.UpdateUserParams{
		DisplayName: &result.DisplayName,
		Email:       &result.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	metrics.RecordReconciliation(metrics.ActionUpdated)
	return updated, nil
}
