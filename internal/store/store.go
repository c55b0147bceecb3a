package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	Users            = "users"
	ActiveUsers      = "active_users"
	ChatMessages     = "chat_messages"
	UserAchievements = "user_achievements"
	Feedback         = "feedback"
)

// Collections is the fixed set of collection names every backend serves.
var Collections = []string{Users, ActiveUsers, ChatMessages, UserAchievements, Feedback}

const IDField = "_id"

var (
	ErrNotFound          = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrDuplicateID       = errors.New("duplicate record id")
)

// Query is an equality match: every field must be present and equal.
type Query map[string]any

type FindOptions struct {
	SortField      string
	SortDescending bool
	Limit          int64
}

type UpdateResult struct {
	Matched    bool
	UpsertedID string
}

// Store is the record store contract shared by all backends. Implementations
// are selected once at startup and passed down explicitly.
type Store interface {
	Backend() string
	FindOne(ctx context.Context, collection string, q Query) (Document, error)
	FindMany(ctx context.Context, collection string, q Query, opts FindOptions) ([]Document, error)
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)
	UpdateOne(ctx context.Context, collection string, q Query, set Document, upsert bool) (UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, q Query) (int64, error)
	DeleteMany(ctx context.Context, collection string, q Query) (int64, error)
	Count(ctx context.Context, collection string, q Query) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// TTLStore is implemented by backends that physically expire presence rows.
type TTLStore interface {
	NativeTTL() bool
}

// HasNativeTTL reports whether s removes stale presence rows on its own.
func HasNativeTTL(s Store) bool {
	t, ok := s.(TTLStore)
	return ok && t.NativeTTL()
}

// CheckCollection returns ErrUnknownCollection for names outside Collections.
func CheckCollection(name string) error {
	for _, c := range Collections {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

// NewID returns a fresh 24-hex record id. Ids sort in creation order within a process.
func NewID() string {
	return primitive.NewObjectID().Hex()
}
