package chat

import (
	"context"

	"portfolio/internal/store"
)

type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	CountMessages(ctx context.Context) (int64, error)
	GetOldestMessages(ctx context.Context, limit int64) ([]*Message, error)
	GetLatestMessages(ctx context.Context, limit int64) ([]*Message, error)
	DeleteMessage(ctx context.Context, id string) (bool, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) CreateMessage(ctx context.Context, m *Message) error {
	id, err := r.store.InsertOne(ctx, store.ChatMessages, m.document())
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (r *repository) CountMessages(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, store.ChatMessages, store.Query{})
}

func (r *repository) GetOldestMessages(ctx context.Context, limit int64) ([]*Message, error) {
	return r.find(ctx, store.FindOptions{SortField: "timestamp", Limit: limit})
}

func (r *repository) GetLatestMessages(ctx context.Context, limit int64) ([]*Message, error) {
	return r.find(ctx, store.FindOptions{SortField: "timestamp", SortDescending: true, Limit: limit})
}

func (r *repository) find(ctx context.Context, opts store.FindOptions) ([]*Message, error) {
	docs, err := r.store.FindMany(ctx, store.ChatMessages, store.Query{}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]*Message, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc))
	}
	return out, nil
}

func (r *repository) DeleteMessage(ctx context.Context, id string) (bool, error) {
	n, err := r.store.DeleteOne(ctx, store.ChatMessages, store.Query{store.IDField: id})
	return n > 0, err
}
