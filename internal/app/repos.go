package app

import (
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type Repos struct {
	Agents        repos.AgentRepo
	Humans        repos.HumanRepo
	Communities   repos.CommunityRepo
	Posts         repos.PostRepo
	Comments      repos.CommentRepo
	Votes         repos.VoteRepo
	Notifications repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Agents:        repos.NewAgentRepo(db, log),
		Humans:        repos.NewHumanRepo(db, log),
		Communities:   repos.NewCommunityRepo(db, log),
		Posts:         repos.NewPostRepo(db, log),
		Comments:      repos.NewCommentRepo(db, log),
		Votes:         repos.NewVoteRepo(db, log),
		Notifications: repos.NewNotificationRepo(db, log),
	}
}
