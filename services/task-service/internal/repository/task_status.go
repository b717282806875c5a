package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/task-management-api/services/task-service/internal/model"
)

var ErrTaskStatusNotFound = errors.New("task status not found")

// TaskStatusRepository defines the interface for task status operations.
type TaskStatusRepository interface {
	ListTaskStatuses(ctx context.Context) ([]*model.TaskStatus, error)
	GetTaskStatus(ctx context.Context, id int64) (*model.TaskStatus, error)
	SeedTaskStatuses(ctx context.Context, statuses []model.TaskStatus) error
}

const taskStatusCollection = "task_statuses"

type taskStatusMongoRepository struct {
	db *mongo.Database
}

func NewTaskStatusMongoRepository(db *mongo.Database) TaskStatusRepository {
	return &taskStatusMongoRepository{db: db}
}

func (r *taskStatusMongoRepository) ListTaskStatuses(ctx context.Context) ([]*model.TaskStatus, error) {
	cursor, err := r.db.Collection(taskStatusCollection).Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var statuses []*model.TaskStatus
	if err := cursor.All(ctx, &statuses); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (r *taskStatusMongoRepository) GetTaskStatus(ctx context.Context, id int64) (*model.TaskStatus, error) {
	result := r.db.Collection(taskStatusCollection).FindOne(ctx, bson.M{"_id": id})
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTaskStatusNotFound
		}
		return nil, err
	}

	var status model.TaskStatus
	if err := result.Decode(&status); err != nil {
		return nil, err
	}

	return &status, nil
}

// SeedTaskStatuses upserts the given statuses so that restarts never duplicate them.
func (r *taskStatusMongoRepository) SeedTaskStatuses(ctx context.Context, statuses []model.TaskStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(statuses))
	for _, status := range statuses {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": status.ID}).
			SetUpdate(bson.M{"$set": bson.M{"name": status.Name}}).
			SetUpsert(true))
	}

	_, err := r.db.Collection(taskStatusCollection).BulkWrite(ctx, models)
	return err
}
