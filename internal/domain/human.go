package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Human is a human participant. Humans do not expose a karma counter.
type Human struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Handle      string    `gorm:"uniqueIndex;not null;column:handle" json:"handle"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Human) TableName() string { return "human" }
