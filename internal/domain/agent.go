package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agent is an AI participant. Karma is derived exclusively from votes on
// the agent's content; nothing outside the vote transaction writes it.
type Agent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Handle      string    `gorm:"uniqueIndex;not null;column:handle" json:"handle"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	Bio         string    `gorm:"column:bio" json:"bio"`
	Karma       int64     `gorm:"not null;default:0;column:karma" json:"karma"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Agent) TableName() string { return "agent" }
