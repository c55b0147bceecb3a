package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PresenceTTL    time.Duration
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.SugaredLogger
}

// Connect dials MongoDB, confirms the deployment answers a ping and creates
// the indexes the services rely on, including the presence TTL index.
func Connect(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is empty")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger.Sugar(),
	}
	if err := s.ensureIndexes(pingCtx, cfg.PresenceTTL); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s.logger.Infow("Connected to MongoDB", "database", cfg.Database)
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context, presenceTTL time.Duration) error {
	if presenceTTL <= 0 {
		presenceTTL = 5 * time.Minute
	}
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{store.ActiveUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "last_active", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(presenceTTL.Seconds())),
		}},
		{store.ChatMessages, mongo.IndexModel{Keys: bson.D{{Key: "timestamp", Value: 1}}}},
		{store.UserAchievements, mongo.IndexModel{Keys: bson.D{{Key: "user_udid", Value: 1}}}},
		{store.Users, mongo.IndexModel{Keys: bson.D{{Key: "udid", Value: 1}}}},
	}
	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}

func (s *Store) Backend() string { return "mongo" }

// NativeTTL is true: the server sweeps stale presence rows itself.
func (s *Store) NativeTTL() bool { return true }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) (*mongo.Collection, error) {
	if err := store.CheckCollection(name); err != nil {
		return nil, err
	}
	return s.db.Collection(name), nil
}

func (s *Store) FindOne(ctx context.Context, name string, q store.Query) (store.Document, error) {
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}
	var raw bson.M
	err = coll.FindOne(ctx, toFilter(q)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(raw), nil
}

func (s *Store) FindMany(ctx context.Context, name string, q store.Query, opts store.FindOptions) ([]store.Document, error) {
	coll, err := s.collection(name)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find()
	if opts.SortField != "" {
		dir := 1
		if opts.SortDescending {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: dir}, {Key: store.IDField, Value: dir}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cur, err := coll.Find(ctx, toFilter(q), findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]store.Document, 0)
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, fromBSON(raw))
	}
	return out, cur.Err()
}

func (s *Store) InsertOne(ctx context.Context, name string, doc store.Document) (string, error) {
	coll, err := s.collection(name)
	if err != nil {
		return "", err
	}
	doc = doc.Clone()
	if doc.ID() == "" {
		doc[store.IDField] = store.NewID()
	}
	id := doc.ID()

	if _, err := coll.InsertOne(ctx, toBSON(doc)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %s", store.ErrDuplicateID, id)
		}
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateOne(ctx context.Context, name string, q store.Query, set store.Document, upsert bool) (store.UpdateResult, error) {
	coll, err := s.collection(name)
	if err != nil {
		return store.UpdateResult{}, err
	}
	fields := toBSON(set)
	delete(fields, store.IDField)

	res, err := coll.UpdateOne(ctx, toFilter(q), bson.M{"$set": fields}, options.Update().SetUpsert(upsert))
	if err != nil {
		return store.UpdateResult{}, err
	}
	out := store.UpdateResult{Matched: res.MatchedCount > 0}
	if res.UpsertedID != nil {
		out.UpsertedID = idString(res.UpsertedID)
	}
	return out, nil
}

func (s *Store) DeleteOne(ctx context.Context, name string, q store.Query) (int64, error) {
	coll, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteOne(ctx, toFilter(q))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) DeleteMany(ctx context.Context, name string, q store.Query) (int64, error) {
	coll, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	res, err := coll.DeleteMany(ctx, toFilter(q))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Count(ctx context.Context, name string, q store.Query) (int64, error) {
	coll, err := s.collection(name)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, toFilter(q))
}

func toFilter(q store.Query) bson.M {
	return toBSON(store.Document(q))
}

func toBSON(doc store.Document) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == store.IDField {
			if hex, ok := v.(string); ok {
				if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
					out[k] = oid
					continue
				}
			}
		}
		if t, ok := v.(time.Time); ok {
			v = t.UTC()
		}
		out[k] = v
	}
	return out
}

func fromBSON(raw bson.M) store.Document {
	out := make(store.Document, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case primitive.ObjectID:
			out[k] = t.Hex()
		case primitive.DateTime:
			out[k] = t.Time().UTC()
		default:
			out[k] = v
		}
	}
	return out
}

func idString(v any) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(v)
}
