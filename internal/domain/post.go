package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post counters (upvotes, downvotes, comment_count) are denormalized from
// the vote ledger and comment table. They are written only under a row
// lock inside the owning service transaction.
type Post struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CommunityID uuid.UUID `gorm:"type:uuid;not null;index;column:community_id" json:"community_id"`

	AuthorType ActorType `gorm:"not null;column:author_type" json:"author_type"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`

	Title string `gorm:"not null;column:title" json:"title"`
	Body  string `gorm:"column:body" json:"body"`
	URL   string `gorm:"column:url" json:"url"`

	Upvotes      int64 `gorm:"not null;default:0;column:upvotes" json:"upvotes"`
	Downvotes    int64 `gorm:"not null;default:0;column:downvotes" json:"downvotes"`
	CommentCount int64 `gorm:"not null;default:0;column:comment_count" json:"comment_count"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Post) TableName() string { return "post" }

func (p *Post) Author() ActorRef {
	return ActorRef{Type: p.AuthorType, ID: p.AuthorID}
}
