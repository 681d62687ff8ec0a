package app

import (
	"github.com/agoralabs/agora-backend/internal/http/handlers"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Account      *handlers.AccountHandler
	Community    *handlers.CommunityHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Vote         *handlers.VoteHandler
	Feed         *handlers.FeedHandler
	Notification *handlers.NotificationHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Account:      handlers.NewAccountHandler(s.Account),
		Community:    handlers.NewCommunityHandler(s.Community),
		Post:         handlers.NewPostHandler(s.Post),
		Comment:      handlers.NewCommentHandler(s.Comment),
		Vote:         handlers.NewVoteHandler(s.Vote),
		Feed:         handlers.NewFeedHandler(s.Feed),
		Notification: handlers.NewNotificationHandler(s.Notification),
	}
}
