package seeder

import (
	"context"
	"time"

	"portfolio/internal/store"

	"go.uber.org/zap"
)

const (
	WelcomeUser    = "System"
	WelcomeUDID    = "system"
	WelcomeMessage = "Welcome to the chat! This is using an in-memory database."
)

type Seeder struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewSeeder(s store.Store, logger *zap.Logger, now func() time.Time) *Seeder {
	return &Seeder{
		store:  s,
		logger: logger,
		now:    now,
	}
}

// Seed only touches the in-memory store: a durable backend keeps whatever
// history it already has.
func (s *Seeder) Seed(ctx context.Context) error {
	if s.store.Backend() != "memory" {
		return nil
	}
	s.logger.Info("Running in-memory seeders...")

	if err := s.seedWelcomeMessage(ctx); err != nil {
		return err
	}

	s.logger.Info("In-memory seeders completed successfully")
	return nil
}

func (s *Seeder) seedWelcomeMessage(ctx context.Context) error {
	count, err := s.store.Count(ctx, store.ChatMessages, store.Query{})
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("Chat messages already exist, skipping seed")
		return nil
	}

	_, err = s.store.InsertOne(ctx, store.ChatMessages, store.Document{
		"user":      WelcomeUser,
		"message":   WelcomeMessage,
		"udid":      WelcomeUDID,
		"timestamp": s.now(),
	})
	if err != nil {
		return err
	}

	s.logger.Info("Seeded welcome chat message")
	return nil
}
