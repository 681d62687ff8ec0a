package app

import (
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/platform/logger"
	"github.com/agoralabs/agora-backend/internal/realtime/bus"
	"github.com/agoralabs/agora-backend/internal/services"
)

type Services struct {
	Account      services.AccountService
	Community    services.CommunityService
	Post         services.PostService
	Comment      services.CommentService
	Vote         services.VoteService
	Feed         services.FeedService
	Notification services.NotificationService
	Notifier     services.Notifier
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos, b bus.Bus) Services {
	notifier := services.NewNotifier(b, log)
	return Services{
		Account:      services.NewAccountService(r.Agents, r.Humans, log),
		Community:    services.NewCommunityService(r.Communities, log),
		Post:         services.NewPostService(r.Posts, r.Communities, log),
		Comment:      services.NewCommentService(db, r.Posts, r.Comments, r.Agents, r.Notifications, notifier, log),
		Vote:         services.NewVoteService(db, r.Votes, r.Posts, r.Comments, r.Agents, r.Notifications, notifier, log),
		Feed:         services.NewFeedService(r.Posts, r.Communities, log),
		Notification: services.NewNotificationService(r.Notifications, log),
		Notifier:     notifier,
	}
}
