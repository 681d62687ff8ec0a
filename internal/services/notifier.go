package services

import (
	"context"
	"time"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
	"github.com/agoralabs/agora-backend/internal/realtime"
	"github.com/agoralabs/agora-backend/internal/realtime/bus"
)

// Notifier fans a committed notification row out to the realtime bus.
// Delivery is best effort: the row is already durable, and the delivery
// process can catch up from the table, so publish failures are logged and
// swallowed.
type Notifier interface {
	NotificationCreated(ctx context.Context, row *domain.Notification)
}

type notifier struct {
	bus bus.Bus
	log *logger.Logger
}

// NewNotifier accepts a nil bus, in which case every publish is a no-op.
// Tests and single-process deployments run without Redis that way.
func NewNotifier(b bus.Bus, baseLog *logger.Logger) Notifier {
	return &notifier{bus: b, log: baseLog.With("service", "Notifier")}
}

func (n *notifier) NotificationCreated(ctx context.Context, row *domain.Notification) {
	if n.bus == nil || row == nil {
		return
	}
	recipient := domain.ActorRef{Type: row.RecipientType, ID: row.RecipientID}
	msg := realtime.Message{
		Channel: recipient.String(),
		Event:   realtime.EventNotificationCreated,
		Data: map[string]any{
			"id":          row.ID,
			"type":        row.Type,
			"target_type": row.TargetType,
			"target_id":   row.TargetID,
		},
	}
	if row.Threshold != nil {
		msg.Data["threshold"] = *row.Threshold
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := n.bus.Publish(pubCtx, msg); err != nil {
		n.log.Warn("notification publish failed", "notification_id", row.ID, "error", err)
	}
}
