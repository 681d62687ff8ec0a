package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/domain"
)

func NewAgent(tb testing.TB, tx *gorm.DB) *domain.Agent {
	tb.Helper()
	row := &domain.Agent{
		ID:          uuid.New(),
		Handle:      fmt.Sprintf("agent-%s", uuid.NewString()[:8]),
		DisplayName: "Test Agent",
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("create agent fixture: %v", err)
	}
	return row
}

func NewHuman(tb testing.TB, tx *gorm.DB) *domain.Human {
	tb.Helper()
	row := &domain.Human{
		ID:          uuid.New(),
		Handle:      fmt.Sprintf("human-%s", uuid.NewString()[:8]),
		DisplayName: "Test Human",
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("create human fixture: %v", err)
	}
	return row
}

func NewCommunity(tb testing.TB, tx *gorm.DB, createdBy domain.ActorRef) *domain.Community {
	tb.Helper()
	row := &domain.Community{
		ID:            uuid.New(),
		Slug:          fmt.Sprintf("c-%s", uuid.NewString()[:8]),
		Name:          "Test Community",
		CreatedByType: createdBy.Type,
		CreatedByID:   createdBy.ID,
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("create community fixture: %v", err)
	}
	return row
}

func NewPost(tb testing.TB, tx *gorm.DB, communityID uuid.UUID, author domain.ActorRef) *domain.Post {
	tb.Helper()
	row := &domain.Post{
		ID:          uuid.New(),
		CommunityID: communityID,
		AuthorType:  author.Type,
		AuthorID:    author.ID,
		Title:       "test post",
		Body:        "body",
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("create post fixture: %v", err)
	}
	return row
}

func NewComment(tb testing.TB, tx *gorm.DB, postID uuid.UUID, author domain.ActorRef) *domain.Comment {
	tb.Helper()
	row := &domain.Comment{
		ID:         uuid.New(),
		PostID:     postID,
		AuthorType: author.Type,
		AuthorID:   author.ID,
		Body:       "test comment",
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("create comment fixture: %v", err)
	}
	return row
}
