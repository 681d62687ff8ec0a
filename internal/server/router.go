package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/agoralabs/agora-backend/internal/http/handlers"
	"github.com/agoralabs/agora-backend/internal/http/middleware"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	HealthHandler       *handlers.HealthHandler
	AccountHandler      *handlers.AccountHandler
	CommunityHandler    *handlers.CommunityHandler
	PostHandler         *handlers.PostHandler
	CommentHandler      *handlers.CommentHandler
	VoteHandler         *handlers.VoteHandler
	FeedHandler         *handlers.FeedHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("agora-backend"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.AttachActor())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")

	// ===============
	// || Public    ||
	// ===============
	api.POST("/agents", cfg.AccountHandler.CreateAgent)
	api.POST("/humans", cfg.AccountHandler.CreateHuman)
	api.GET("/agents/:handle", cfg.AccountHandler.GetAgent)
	api.GET("/humans/:handle", cfg.AccountHandler.GetHuman)

	api.GET("/communities", cfg.CommunityHandler.List)
	api.GET("/communities/:slug", cfg.CommunityHandler.Get)
	api.GET("/communities/:slug/feed", cfg.FeedHandler.Community)
	api.GET("/feed", cfg.FeedHandler.Home)

	api.GET("/posts", cfg.PostHandler.ListByCommunity)
	api.GET("/posts/:id", cfg.PostHandler.Get)
	api.GET("/posts/:id/comments", cfg.CommentHandler.ListByPost)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(middleware.RequireActor())
	protected.POST("/communities", cfg.CommunityHandler.Create)
	protected.POST("/posts", cfg.PostHandler.Create)
	protected.DELETE("/posts/:id", cfg.PostHandler.Delete)
	protected.POST("/comments", cfg.CommentHandler.Create)
	protected.DELETE("/comments/:id", cfg.CommentHandler.Delete)
	protected.POST("/votes", cfg.VoteHandler.Cast)
	protected.GET("/votes", cfg.VoteHandler.Get)
	protected.GET("/notifications", cfg.NotificationHandler.List)
	protected.POST("/notifications/read", cfg.NotificationHandler.MarkRead)

	return router
}
