package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"portfolio/internal/metrics"
	"portfolio/internal/providers/redis"
	"portfolio/internal/utils"

	"go.uber.org/zap"
)

var ErrFieldsRequired = errors.New("user and message are required")

type Config struct {
	// Retention is the most messages kept after an insert completes.
	Retention int
	// ReadLimit caps how many recent messages a listing returns.
	ReadLimit int
	CacheTTL  time.Duration
}

type Service interface {
	CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error)
	GetMessages(ctx context.Context) ([]*Message, error)
}

type service struct {
	repo     Repository
	cfg      Config
	redisP   *redis.RedisProvider
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
	now      func() time.Time
	genKey   string
}

func NewService(repo Repository, cfg Config, redisP *redis.RedisProvider, eventBus *utils.EventBus, logger *zap.Logger) Service {
	if cfg.Retention <= 0 {
		cfg.Retention = 20
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 100
	}
	return &service{
		repo:     repo,
		cfg:      cfg,
		redisP:   redisP,
		eventBus: eventBus,
		logger:   logger.Sugar(),
		now:      utils.Now,
		genKey:   "chat:messages:gen",
	}
}

func (s *service) CreateMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	if strings.TrimSpace(req.User) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, ErrFieldsRequired
	}

	m := &Message{
		User:      req.User,
		Message:   req.Message,
		UDID:      req.UDID,
		Timestamp: s.now(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	// The message is stored; a failed sweep is healed by the next insert.
	if err := s.enforceRetention(ctx); err != nil {
		s.logger.Errorw("Chat retention failed", "error", err)
	}

	// Bumped after the insert and the sweep, so a listing that read the store
	// earlier can only fill a key no reader asks for anymore.
	s.redisP.Incr(ctx, s.genKey)
	s.eventBus.Publish(utils.EventChatMessageCreated, m)

	return m, nil
}

// enforceRetention deletes the oldest messages above the ceiling one by one.
// Inserts racing this count can leave the collection briefly over the ceiling.
func (s *service) enforceRetention(ctx context.Context) error {
	count, err := s.repo.CountMessages(ctx)
	if err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	excess := count - int64(s.cfg.Retention)
	if excess <= 0 {
		return nil
	}

	oldest, err := s.repo.GetOldestMessages(ctx, excess)
	if err != nil {
		return fmt.Errorf("find oldest messages: %w", err)
	}
	for _, m := range oldest {
		deleted, err := s.repo.DeleteMessage(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("delete message %s: %w", m.ID, err)
		}
		if deleted {
			metrics.ChatMessagesEvicted.Inc()
		}
	}

	s.logger.Debugw("Chat retention applied", "count", count, "evicted", len(oldest))
	return nil
}

// GetMessages returns the most recent messages, oldest first.
func (s *service) GetMessages(ctx context.Context) ([]*Message, error) {
	gen, cacheable := s.redisP.Generation(ctx, s.genKey)
	key := s.listKey(gen)

	var cached []*Message
	if cacheable && s.redisP.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	messages, err := s.repo.GetLatestMessages(ctx, int64(s.cfg.ReadLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	slices.Reverse(messages)

	if cacheable {
		s.redisP.SetJSON(ctx, key, messages, s.cfg.CacheTTL)
	}
	return messages, nil
}

func (s *service) listKey(gen int64) string {
	return fmt.Sprintf("chat:messages:latest:%d:%d", s.cfg.ReadLimit, gen)
}
