package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type CreatePostInput struct {
	CommunityID uuid.UUID `json:"community_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	URL         string    `json:"url"`
}

type PostService interface {
	Create(ctx context.Context, author domain.ActorRef, input CreatePostInput) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListByCommunity(ctx context.Context, communityID uuid.UUID, limit int) ([]*domain.Post, error)
	// Delete soft-deletes the post; only the author may do it. Vote ledger
	// rows and counters stay as they were at deletion time.
	Delete(ctx context.Context, actor domain.ActorRef, id uuid.UUID) error
}

type postService struct {
	posts       repos.PostRepo
	communities repos.CommunityRepo
	log         *logger.Logger
}

func NewPostService(posts repos.PostRepo, communities repos.CommunityRepo, baseLog *logger.Logger) PostService {
	return &postService{
		posts:       posts,
		communities: communities,
		log:         baseLog.With("service", "PostService"),
	}
}

func (s *postService) Create(ctx context.Context, author domain.ActorRef, input CreatePostInput) (*domain.Post, error) {
	if err := author.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing title"))
	}
	if input.CommunityID == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing community_id"))
	}

	dbc := dbctx.Context{Ctx: ctx}
	communities, err := s.communities.GetByIDs(dbc, []uuid.UUID{input.CommunityID})
	if err != nil {
		return nil, err
	}
	if len(communities) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("community %s not found", input.CommunityID))
	}

	rows, err := s.posts.Create(dbc, []*domain.Post{{
		CommunityID: input.CommunityID,
		AuthorType:  author.Type,
		AuthorID:    author.ID,
		Title:       title,
		Body:        input.Body,
		URL:         strings.TrimSpace(input.URL),
	}})
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if id == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing post id"))
	}
	rows, err := s.posts.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("post %s not found", id))
	}
	return rows[0], nil
}

func (s *postService) ListByCommunity(ctx context.Context, communityID uuid.UUID, limit int) ([]*domain.Post, error) {
	if communityID == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing community_id"))
	}
	return s.posts.ListByCommunity(dbctx.Context{Ctx: ctx}, communityID, limit)
}

func (s *postService) Delete(ctx context.Context, actor domain.ActorRef, id uuid.UUID) error {
	if err := actor.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !post.Author().Equal(actor) {
		return apierr.Forbidden(fmt.Errorf("%s is not the author of post %s", actor, id))
	}
	return s.posts.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id)
}
