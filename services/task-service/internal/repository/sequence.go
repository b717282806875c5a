package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const counterCollection = "counters"

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// nextSequence atomically increments and returns the named counter.
// Values are never handed out twice, even when the insert that consumed one fails.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	result := db.Collection(counterCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var c counter
	if err := result.Decode(&c); err != nil {
		return 0, err
	}

	return c.Seq, nil
}
