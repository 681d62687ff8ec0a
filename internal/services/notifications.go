package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type NotificationService interface {
	List(ctx context.Context, recipient domain.ActorRef, limit int) ([]*domain.Notification, error)
	// MarkRead is scoped to the recipient; ids belonging to other actors are
	// silently ignored.
	MarkRead(ctx context.Context, recipient domain.ActorRef, ids []uuid.UUID) error
}

type notificationService struct {
	notifications repos.NotificationRepo
	log           *logger.Logger
}

func NewNotificationService(notifications repos.NotificationRepo, baseLog *logger.Logger) NotificationService {
	return &notificationService{
		notifications: notifications,
		log:           baseLog.With("service", "NotificationService"),
	}
}

func (s *notificationService) List(ctx context.Context, recipient domain.ActorRef, limit int) ([]*domain.Notification, error) {
	if err := recipient.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	return s.notifications.ListByRecipient(dbctx.Context{Ctx: ctx}, recipient, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, recipient domain.ActorRef, ids []uuid.UUID) error {
	if err := recipient.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}
	return s.notifications.MarkRead(dbctx.Context{Ctx: ctx}, recipient, ids)
}
