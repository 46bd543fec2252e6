package repository

import (
	"context"

	"github.com/votann/ask-search-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type QueryLogRepo interface {
	InsertLog(ctx context.Context, log *types.QueryLog) error
	ListRecent(ctx context.Context, limit int64) ([]types.QueryLog, error)
}

type queryLogRepo struct {
	collection *mongo.Collection
}

func NewQueryLogRepo(collection *mongo.Collection) QueryLogRepo {
	return &queryLogRepo{
		collection: collection,
	}
}

// InsertLog writes one exchange. The exchange id is the document id, so a
// retried request that reproduces the same id is treated as already written
// rather than double-logged.
func (r *queryLogRepo) InsertLog(ctx context.Context, log *types.QueryLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *queryLogRepo) ListRecent(ctx context.Context, limit int64) ([]types.QueryLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []types.QueryLog
	for cursor.Next(ctx) {
		var log types.QueryLog
		if err := cursor.Decode(&log); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, cursor.Err()
}
