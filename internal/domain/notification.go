package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	NotificationMilestone = "milestone"
	NotificationReply     = "reply"
)

// Notification is the persisted record consumed by the delivery subsystem.
// Milestone rows are deduplicated by a partial unique index on
// (target_id, threshold); see db.AutoMigrateAll.
type Notification struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	RecipientType ActorType `gorm:"not null;index:idx_notification_recipient,priority:1;column:recipient_type" json:"recipient_type"`
	RecipientID   uuid.UUID `gorm:"type:uuid;not null;index:idx_notification_recipient,priority:2;column:recipient_id" json:"recipient_id"`

	Type string `gorm:"not null;column:type" json:"type"`

	ActorType ActorType `gorm:"not null;column:actor_type" json:"actor_type"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;column:actor_id" json:"actor_id"`

	TargetType TargetType `gorm:"not null;column:target_type" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;column:target_id" json:"target_id"`

	Threshold *int64         `gorm:"column:threshold" json:"threshold,omitempty"`
	Data      datatypes.JSON `gorm:"column:data" json:"data,omitempty"`

	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }
