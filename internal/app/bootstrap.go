package app

import (
	"context"

	"portfolio/internal/app/achievement"
	"portfolio/internal/app/chat"
	"portfolio/internal/app/feedback"
	"portfolio/internal/app/health"
	"portfolio/internal/app/presence"
	"portfolio/internal/app/user"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/db/seeder"
	"portfolio/internal/gateways/websocket"
	"portfolio/internal/providers/redis"
	"portfolio/internal/router"
	"portfolio/internal/store"
	"portfolio/internal/utils"

	"go.uber.org/zap"
)

type Application struct {
	Router *router.Router
	Conn   *db.Connection
	Redis  *redis.RedisProvider
	Pruner *presence.Pruner
}

// Bootstrap picks the record store once and wires every feature on top of it.
// ctx bounds the background workers (hub, redis monitor).
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Application {
	conn := db.Open(ctx, cfg, logger)

	seed := seeder.NewSeeder(conn.Store, logger, utils.Now)
	if err := seed.Seed(ctx); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(ctx, cfg.RedisURL, logger, cfg.RedisTTL)

	return NewApplication(ctx, cfg, logger, conn, redisProvider)
}

func NewApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger, conn *db.Connection, redisProvider *redis.RedisProvider) *Application {
	eventBus := utils.NewEventBus()

	userRepo := user.NewRepository(conn.Store)
	achievementRepo := achievement.NewRepository(conn.Store)
	presenceRepo := presence.NewRepository(conn.Store)
	chatRepo := chat.NewRepository(conn.Store)
	feedbackRepo := feedback.NewRepository(conn.Store)

	userService := user.NewService(userRepo, eventBus, logger)
	achievementService := achievement.NewService(achievementRepo, userService, logger)
	presenceService := presence.NewService(presenceRepo, cfg.PresenceWindow, store.HasNativeTTL(conn.Store), eventBus, logger)
	chatService := chat.NewService(chatRepo, chat.Config{
		Retention: cfg.ChatRetention,
		ReadLimit: cfg.ChatReadLimit,
		CacheTTL:  cfg.RedisTTL,
	}, redisProvider, eventBus, logger)
	feedbackService := feedback.NewService(feedbackRepo, logger)

	var pruner *presence.Pruner
	if !store.HasNativeTTL(conn.Store) {
		pruner = presence.NewPruner(presenceService, cfg.PresenceWindow, logger)
		pruner.Start(ctx)
	}

	checker := &utils.HealthChecker{Store: conn.Store}
	if redisProvider != nil {
		checker.Redis = redisProvider.Client
	}
	healthService := health.NewService(conn, checker, cfg.Env)

	hub := websocket.NewHub(logger, eventBus)
	go hub.Run(ctx)

	r := router.NewRouter(cfg, logger)

	r.RegisterHealthRoutes(health.NewHandler(healthService, logger))
	r.RegisterUserRoutes(user.NewHandler(userService, logger))
	r.RegisterAchievementRoutes(achievement.NewHandler(achievementService, logger))
	r.RegisterPresenceRoutes(presence.NewHandler(presenceService, logger))
	r.RegisterChatRoutes(chat.NewHandler(chatService, logger))
	r.RegisterFeedbackRoutes(feedback.NewHandler(feedbackService, logger))
	r.RegisterWebSocketRoutes(hub)
	r.RegisterMetricsRoutes()
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		Conn:   conn,
		Redis:  redisProvider,
		Pruner: pruner,
	}
}

func (a *Application) Close(ctx context.Context) error {
	a.Pruner.Stop()
	if err := a.Redis.Close(); err != nil {
		return err
	}
	return a.Conn.Store.Close(ctx)
}
