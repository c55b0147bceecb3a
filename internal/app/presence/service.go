package presence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/utils"

	"go.uber.org/zap"
)

var ErrFieldsRequired = errors.New("udid and name are required")

type Service interface {
	Heartbeat(ctx context.Context, udid, name string) error
	Online(ctx context.Context) ([]ActiveUser, error)
	Prune(ctx context.Context) (int, error)
}

type service struct {
	repo     Repository
	window   time.Duration
	filter   bool
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// NewService builds the presence service. nativeTTL tells it the backend
// deletes stale rows on its own, in which case every stored row is online.
func NewService(repo Repository, window time.Duration, nativeTTL bool, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		window:   window,
		filter:   !nativeTTL,
		eventBus: eventBus,
		logger:   logger.Sugar(),
		now:      utils.Now,
	}
}

func (s *service) Heartbeat(ctx context.Context, udid, name string) error {
	if strings.TrimSpace(udid) == "" || strings.TrimSpace(name) == "" {
		return ErrFieldsRequired
	}
	if err := s.repo.Touch(ctx, udid, name, s.now()); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	s.eventBus.Publish(utils.EventActiveUserSeen, ActiveUser{UDID: udid, Name: name})
	return nil
}

func (s *service) Online(ctx context.Context) ([]ActiveUser, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}

	now := s.now()
	online := make([]ActiveUser, 0, len(records))
	for _, r := range records {
		if s.filter && s.stale(r, now) {
			continue
		}
		online = append(online, r.ActiveUser)
	}
	return online, nil
}

// Prune deletes rows that fell out of the window. Backends with native TTL
// expire them on their own, so it is a no-op there.
func (s *service) Prune(ctx context.Context) (int, error) {
	if !s.filter {
		return 0, nil
	}
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active users: %w", err)
	}

	now := s.now()
	deleted := 0
	for _, r := range records {
		if !s.stale(r, now) {
			continue
		}
		ok, err := s.repo.DeleteStale(ctx, r)
		if err != nil {
			return deleted, fmt.Errorf("failed to prune %s: %w", r.UDID, err)
		}
		if ok {
			deleted++
		}
	}
	return deleted, nil
}

func (s *service) stale(r record, now time.Time) bool {
	return r.LastActive.IsZero() || now.Sub(r.LastActive) >= s.window
}
