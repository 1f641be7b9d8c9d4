package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/intervue/internal/interview"
)

const sessionsCollection = "sessions"

var _ interview.SessionRepo = (*MongoSessionRepo)(nil)

// MongoSessionRepo persists interview sessions as MongoDB documents keyed by
// session ID.
type MongoSessionRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to uri, verifies the server is reachable and ensures
// the listing index exists.
func OpenMongo(ctx context.Context, uri, database string) (*MongoSessionRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB is not reachable: %w", err)
	}

	repo := NewMongoSessionRepo(client.Database(database).Collection(sessionsCollection))
	repo.client = client
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return repo, nil
}

// NewMongoSessionRepo wraps an existing collection.
func NewMongoSessionRepo(coll *mongo.Collection) *MongoSessionRepo {
	return &MongoSessionRepo{coll: coll}
}

// EnsureIndexes creates the index backing ListCompleted.
func (r *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "completedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

// Close disconnects the client opened by OpenMongo.
func (r *MongoSessionRepo) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Disconnect(ctx)
}

func (r *MongoSessionRepo) Save(ctx context.Context, s *interview.Session) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

func (r *MongoSessionRepo) Find(ctx context.Context, id string) (*interview.Session, error) {
	var s interview.Session
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *MongoSessionRepo) ListCompleted(ctx context.Context, limit int) ([]interview.SessionSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetProjection(bson.M{"questions": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"status": string(interview.StatusCompleted)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	var sessions []interview.Session
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	out := make([]interview.SessionSummary, len(sessions))
	for i := range sessions {
		out[i] = sessions[i].Summary()
	}
	return out, nil
}
