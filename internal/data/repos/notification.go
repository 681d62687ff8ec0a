package repos

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type NotificationRepo interface {
	Create(dbc dbctx.Context, row *domain.Notification) error
	// CreateMilestone inserts with ON CONFLICT DO NOTHING against the
	// partial unique index on (target_id, threshold). Returns false when the
	// milestone was already recorded, which makes replays idempotent.
	CreateMilestone(dbc dbctx.Context, row *domain.Notification) (bool, error)
	ListByRecipient(dbc dbctx.Context, recipient domain.ActorRef, limit int) ([]*domain.Notification, error)
	MarkRead(dbc dbctx.Context, recipient domain.ActorRef, ids []uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (r *notificationRepo) Create(dbc dbctx.Context, row *domain.Notification) error {
	if row == nil {
		return fmt.Errorf("missing notification row")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Create(row).Error
}

func (r *notificationRepo) CreateMilestone(dbc dbctx.Context, row *domain.Notification) (bool, error) {
	if row == nil {
		return false, fmt.Errorf("missing notification row")
	}
	if row.Type != domain.NotificationMilestone {
		return false, fmt.Errorf("CreateMilestone requires type %q, got %q", domain.NotificationMilestone, row.Type)
	}
	if row.Threshold == nil {
		return false, fmt.Errorf("missing milestone threshold")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "target_id"}, {Name: "threshold"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Name: "type"}, Value: domain.NotificationMilestone},
			}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepo) ListByRecipient(dbc dbctx.Context, recipient domain.ActorRef, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Notification
	if err := txx.WithContext(dbc.Ctx).
		Where("recipient_type = ? AND recipient_id = ?", recipient.Type, recipient.ID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) MarkRead(dbc dbctx.Context, recipient domain.ActorRef, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&domain.Notification{}).
		Where("recipient_type = ? AND recipient_id = ? AND id IN ? AND read_at IS NULL",
			recipient.Type, recipient.ID, ids).
		Update("read_at", time.Now().UTC()).Error
}
