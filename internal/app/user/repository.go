package user

import (
	"context"
	"errors"
	"fmt"

	"portfolio/internal/store"
)

type Repository interface {
	GetUserByName(ctx context.Context, name string) (*User, error)
	GetUserByUDID(ctx context.Context, udid string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	DeleteUserCascade(ctx context.Context, udid string) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) GetUserByName(ctx context.Context, name string) (*User, error) {
	return r.findOne(ctx, store.Query{"name": name})
}

func (r *repository) GetUserByUDID(ctx context.Context, udid string) (*User, error) {
	return r.findOne(ctx, store.Query{"udid": udid})
}

func (r *repository) findOne(ctx context.Context, q store.Query) (*User, error) {
	doc, err := r.store.FindOne(ctx, store.Users, q)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromDocument(doc), nil
}

func (r *repository) CreateUser(ctx context.Context, u *User) error {
	id, err := r.store.InsertOne(ctx, store.Users, u.document())
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// DeleteUserCascade removes the account, its achievements and its presence
// row. Chat messages written under the udid stay.
func (r *repository) DeleteUserCascade(ctx context.Context, udid string) error {
	if _, err := r.store.DeleteOne(ctx, store.Users, store.Query{"udid": udid}); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if _, err := r.store.DeleteMany(ctx, store.UserAchievements, store.Query{"user_udid": udid}); err != nil {
		return fmt.Errorf("delete achievements: %w", err)
	}
	if _, err := r.store.DeleteOne(ctx, store.ActiveUsers, store.Query{"udid": udid}); err != nil {
		return fmt.Errorf("delete presence: %w", err)
	}
	return nil
}
