package achievement

import (
	"context"

	"portfolio/internal/store"
)

type Repository interface {
	GetAchievementsByUser(ctx context.Context, udid string) ([]*Achievement, error)
	GetUnlocks(ctx context.Context, udid, achievementID string) ([]*Achievement, error)
	CreateAchievement(ctx context.Context, a *Achievement) error
	DeleteAchievement(ctx context.Context, id string) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) GetAchievementsByUser(ctx context.Context, udid string) ([]*Achievement, error) {
	return r.find(ctx, store.Query{"user_udid": udid})
}

// GetUnlocks returns every record for the pair, oldest first. More than one
// means concurrent unlocks both got past the existence check.
func (r *repository) GetUnlocks(ctx context.Context, udid, achievementID string) ([]*Achievement, error) {
	return r.find(ctx, store.Query{"user_udid": udid, "achievement_id": achievementID})
}

func (r *repository) find(ctx context.Context, q store.Query) ([]*Achievement, error) {
	docs, err := r.store.FindMany(ctx, store.UserAchievements, q, store.FindOptions{SortField: "unlocked_at"})
	if err != nil {
		return nil, err
	}
	out := make([]*Achievement, 0, len(docs))
	for _, doc := range docs {
		out = append(out, fromDocument(doc))
	}
	return out, nil
}

func (r *repository) CreateAchievement(ctx context.Context, a *Achievement) error {
	id, err := r.store.InsertOne(ctx, store.UserAchievements, a.document())
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *repository) DeleteAchievement(ctx context.Context, id string) error {
	_, err := r.store.DeleteOne(ctx, store.UserAchievements, store.Query{store.IDField: id})
	return err
}
