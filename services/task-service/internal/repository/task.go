package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the interface for task-related database operations.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	ListTasks(ctx context.Context, params FilterTasksParams) ([]*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Task sort fields accepted by ListTasks.
const (
	TaskSortDueDate   = "due_date"
	TaskSortTitle     = "title"
	TaskSortCreatedAt = "created_at"
	TaskSortStatusID  = "status_id"
)

// FilterTasksParams defines the parameters for filtering and ordering tasks.
type FilterTasksParams struct {
	StatusID   *int64
	AssignedTo *int64
	SortBy     string
	SortDesc   bool
}

const (
	taskCollection = "tasks"
	taskSequence   = "tasks"
)

type taskMongoRepository struct {
	db *mongo.Database
}

// NewTaskMongoRepository creates a new MongoDB repository for tasks.
func NewTaskMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) TaskRepository {
	collection := db.Collection(taskCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "assigned_to", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "due_date", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create task indexes")
	}

	return &taskMongoRepository{db: db}
}

func (r *taskMongoRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	id, err := nextSequence(ctx, r.db, taskSequence)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate task id: %w", err)
	}

	now := time.Now().UTC()
	task.ID = id
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.db.Collection(taskCollection).InsertOne(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskMongoRepository) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	result := r.db.Collection(taskCollection).FindOne(ctx, bson.M{"_id": id})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	var task model.Task
	if err := result.Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *taskMongoRepository) ListTasks(ctx context.Context, params FilterTasksParams) ([]*model.Task, error) {
	sortBy := TaskSortDueDate
	switch params.SortBy {
	case TaskSortTitle, TaskSortCreatedAt, TaskSortStatusID:
		sortBy = params.SortBy
	}

	sortOrder := 1
	if params.SortDesc {
		sortOrder = -1
	}

	findOptions := options.Find().SetSort(bson.D{
		{Key: sortBy, Value: sortOrder},
		{Key: "_id", Value: 1},
	})

	// Build filter query
	filter := bson.M{}
	if params.StatusID != nil {
		filter["status_id"] = *params.StatusID
	}
	if params.AssignedTo != nil {
		filter["assigned_to"] = *params.AssignedTo
	}

	cursor, err := r.db.Collection(taskCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}

	var tasks []*model.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskMongoRepository) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.UpdatedAt = time.Now().UTC()

	result, err := r.db.Collection(taskCollection).ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return nil, err
	}

	if result.MatchedCount == 0 {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (r *taskMongoRepository) DeleteTask(ctx context.Context, id int64) error {
	result, err := r.db.Collection(taskCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrTaskNotFound
	}

	return nil
}
