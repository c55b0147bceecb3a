package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTaken    = errors.New("username already taken")
	ErrUserNotFound = errors.New("user not found")
)

type Service interface {
	Register(ctx context.Context, name string) (*User, error)
	GetByUDID(ctx context.Context, udid string) (*User, error)
	Delete(ctx context.Context, udid string) error
}

type service struct {
	repo     Repository
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewService(repo Repository, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.Sugar(),
		now:      utils.Now,
	}
}

// Register creates a user unless the trimmed name is already in use. The
// lookup and the insert are separate store calls, so two concurrent
// registrations of one name can both succeed.
func (s *service) Register(ctx context.Context, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	_, err := s.repo.GetUserByName(ctx, name)
	if err == nil {
		return nil, ErrNameTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}

	u := &User{
		Name:      name,
		UDID:      uuid.NewString(),
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User registered", "udid", u.UDID, "name", u.Name)
	return u, nil
}

func (s *service) GetByUDID(ctx context.Context, udid string) (*User, error) {
	return s.repo.GetUserByUDID(ctx, udid)
}

func (s *service) Delete(ctx context.Context, udid string) error {
	if _, err := s.repo.GetUserByUDID(ctx, udid); err != nil {
		return err
	}
	if err := s.repo.DeleteUserCascade(ctx, udid); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Infow("User deleted", "udid", udid)
	s.eventBus.Publish(utils.EventUserDeleted, map[string]interface{}{"udid": udid})
	return nil
}
