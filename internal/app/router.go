package app

import (
	"github.com/gin-gonic/gin"

	"github.com/agoralabs/agora-backend/internal/platform/logger"
	"github.com/agoralabs/agora-backend/internal/server"
)

func wireRouter(log *logger.Logger, h Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		HealthHandler:       h.Health,
		AccountHandler:      h.Account,
		CommunityHandler:    h.Community,
		PostHandler:         h.Post,
		CommentHandler:      h.Comment,
		VoteHandler:         h.Vote,
		FeedHandler:         h.Feed,
		NotificationHandler: h.Notification,
	})
}
