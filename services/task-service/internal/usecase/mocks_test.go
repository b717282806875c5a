package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/repository"
	"github.com/vasapolrittideah/task-management-api/shared/provider"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*model.User)
	return created, args.Error(1)
}

func (m *mockUserRepository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) GetUsersByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) UpdateUser(
	ctx context.Context,
	id int64,
	params repository.UpdateUserParams,
) (*model.User, error) {
	args := m.Called(ctx, id, params)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	args := m.Called(ctx, params)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

type mockValidator struct {
	mu     sync.Mutex
	result *provider.ValidationResult
	err    error
	calls  int
	delay  time.Duration
}

func (m *mockValidator) ValidateToken(_ context.Context, _ string) (*provider.ValidationResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return m.result, m.err
}

func (m *mockValidator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type cacheEntry struct {
	user model.User
	ttl  time.Duration
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]cacheEntry)}
}

func (c *fakeCache) Get(_ context.Context, token string) (model.User, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return model.User{}, false, c.getErr
	}
	entry, ok := c.entries[token]
	return entry.user, ok, nil
}

func (c *fakeCache) Set(_ context.Context, token string, user model.User, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[token] = cacheEntry{user: user, ttl: ttl}
	return nil
}

func (c *fakeCache) entry(token string) (cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[token]
	return entry, ok
}

type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(*model.Task)
	return created, args.Error(1)
}

func (m *mockTaskRepository) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *mockTaskRepository) ListTasks(ctx context.Context, params repository.FilterTasksParams) ([]*model.Task, error) {
	args := m.Called(ctx, params)
	tasks, _ := args.Get(0).([]*model.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepository) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)
	updated, _ := args.Get(0).(*model.Task)
	return updated, args.Error(1)
}

func (m *mockTaskRepository) DeleteTask(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTaskStatusRepository struct {
	mock.Mock
}

func (m *mockTaskStatusRepository) ListTaskStatuses(ctx context.Context) ([]*model.TaskStatus, error) {
	args := m.Called(ctx)
	statuses, _ := args.Get(0).([]*model.TaskStatus)
	return statuses, args.Error(1)
}

func (m *mockTaskStatusRepository) GetTaskStatus(ctx context.Context, id int64) (*model.TaskStatus, error) {
	args := m.Called(ctx, id)
	status, _ := args.Get(0).(*model.TaskStatus)
	return status, args.Error(1)
}

func (m *mockTaskStatusRepository) SeedTaskStatuses(ctx context.Context, statuses []model.TaskStatus) error {
	args := m.Called(ctx, statuses)
	return args.Error(0)
}
