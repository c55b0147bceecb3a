package router

import (
	"portfolio/internal/app/achievement"
	"portfolio/internal/app/chat"
	"portfolio/internal/app/feedback"
	"portfolio/internal/app/health"
	"portfolio/internal/app/presence"
	"portfolio/internal/app/user"
	"portfolio/internal/config"
	"portfolio/internal/gateways/websocket"
	"portfolio/internal/metrics"
	"portfolio/internal/middleware"

	_ "portfolio/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(cfg *config.Config, logger *zap.Logger) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware(cfg))
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(gin.Recovery())
	return &Router{Engine: engine}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterUserRoutes(handler user.Handler) {
	user.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterAchievementRoutes(handler achievement.Handler) {
	achievement.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterPresenceRoutes(handler presence.Handler) {
	presence.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterChatRoutes(handler chat.Handler) {
	chat.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterFeedbackRoutes(handler feedback.Handler) {
	feedback.RegisterRoutes(r.Engine.Group("/api"), handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterMetricsRoutes() {
	r.Engine.GET("/metrics", metrics.Handler())
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
