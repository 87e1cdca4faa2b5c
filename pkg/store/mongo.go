package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	pkgerrors "github.com/dxdlab/dxd/pkg/errors"
)

const runsCollection = "runs"

// MongoStore persists run history to a MongoDB collection, giving serve
// mode replicas a shared audit trail of submitted jobs.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and returns a Store backed by database's
// "runs" collection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStorage, err, "store: connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStorage, err, "store: pinging mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(runsCollection),
	}, nil
}

func (s *MongoStore) SaveRun(ctx context.Context, run RunRecord) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, options.Replace().SetUpsert(true))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeStorage, err, "store: saving run %s", run.ID)
	}
	return nil
}

func (s *MongoStore) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "finished_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStorage, err, "store: listing runs")
	}
	defer cur.Close(ctx)

	var runs []RunRecord
	if err := cur.All(ctx, &runs); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeStorage, err, "store: decoding runs")
	}
	return runs, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
