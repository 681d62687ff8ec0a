package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PostID          uuid.UUID  `gorm:"type:uuid;not null;index;column:post_id" json:"post_id"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index;column:parent_comment_id" json:"parent_comment_id,omitempty"`

	AuthorType ActorType `gorm:"not null;column:author_type" json:"author_type"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`

	Body string `gorm:"not null;column:body" json:"body"`

	Upvotes   int64 `gorm:"not null;default:0;column:upvotes" json:"upvotes"`
	Downvotes int64 `gorm:"not null;default:0;column:downvotes" json:"downvotes"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Comment) TableName() string { return "comment" }

func (c *Comment) Author() ActorRef {
	return ActorRef{Type: c.AuthorType, ID: c.AuthorID}
}
