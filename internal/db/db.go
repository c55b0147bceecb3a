package db

import (
	"context"
	"fmt"

	"portfolio/internal/config"
	"portfolio/internal/metrics"
	"portfolio/internal/store"
	"portfolio/internal/store/memory"
	"portfolio/internal/store/mongo"
	"portfolio/internal/store/postgres"

	"go.uber.org/zap"
)

// Connection is the record store chosen at startup. Fallback is set when the
// configured durable backend could not be reached and memory is serving
// instead; the choice is not revisited for the life of the process.
type Connection struct {
	Store    store.Store
	Driver   string
	Fallback bool
}

func (c *Connection) InMemory() bool {
	return c.Store.Backend() == "memory"
}

// Open connects to the backend named by STORE_DRIVER. A failure to connect is
// logged and answered with the in-memory store.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Connection {
	conn := &Connection{Driver: cfg.StoreDriver}

	s, err := connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Durable store unavailable, falling back to in-memory store",
			zap.String("driver", cfg.StoreDriver),
			zap.Error(err),
		)
		metrics.StoreFallbackTotal.Inc()
		conn.Store = memory.New()
		conn.Fallback = true
		return conn
	}

	conn.Store = s
	logger.Info("Record store ready", zap.String("backend", s.Backend()))
	return conn
}

func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case "", "mongo", "mongodb":
		logger.Info("Connecting to MongoDB",
			zap.String("uri", cfg.RedactedMongoURI()),
			zap.String("database", cfg.MongoDBName),
		)
		return mongo.Connect(ctx, mongo.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDBName,
			ConnectTimeout: cfg.StoreConnectTimeout,
			PresenceTTL:    cfg.PresenceWindow,
		}, logger)
	case "postgres", "postgresql", "supabase":
		logger.Info("Connecting to PostgreSQL", zap.String("dsn", cfg.RedactedPostgresDSN()))
		return postgres.Connect(ctx, cfg.PostgresDSN(), cfg.StoreConnectTimeout, logger)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
