package feedback

import (
	"context"

	"portfolio/internal/store"
)

type Repository interface {
	CreateFeedback(ctx context.Context, f *Feedback) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) CreateFeedback(ctx context.Context, f *Feedback) error {
	id, err := r.store.InsertOne(ctx, store.Feedback, f.document())
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}
