package presence

import (
	"context"
	"time"

	"portfolio/internal/store"
)

type Repository interface {
	Touch(ctx context.Context, udid, name string, at time.Time) error
	GetAll(ctx context.Context) ([]record, error)
	DeleteStale(ctx context.Context, r record) (bool, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Touch(ctx context.Context, udid, name string, at time.Time) error {
	_, err := r.store.UpdateOne(ctx, store.ActiveUsers,
		store.Query{"udid": udid},
		store.Document{"name": name, "last_active": at},
		true,
	)
	return err
}

func (r *repository) GetAll(ctx context.Context) ([]record, error) {
	docs, err := r.store.FindMany(ctx, store.ActiveUsers, store.Query{}, store.FindOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc))
	}
	return out, nil
}

// DeleteStale removes the row only if no heartbeat touched it since it was read.
func (r *repository) DeleteStale(ctx context.Context, rec record) (bool, error) {
	n, err := r.store.DeleteOne(ctx, store.ActiveUsers, store.Query{
		store.IDField: rec.ID,
		"last_active": rec.LastActive,
	})
	return n > 0, err
}
