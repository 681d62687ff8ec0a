package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/db"
	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,62}$`)

type CreateCommunityInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CommunityService interface {
	Create(ctx context.Context, creator domain.ActorRef, input CreateCommunityInput) (*domain.Community, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Community, error)
	List(ctx context.Context, limit int) ([]*domain.Community, error)
}

type communityService struct {
	communities repos.CommunityRepo
	log         *logger.Logger
}

func NewCommunityService(communities repos.CommunityRepo, baseLog *logger.Logger) CommunityService {
	return &communityService{
		communities: communities,
		log:         baseLog.With("service", "CommunityService"),
	}
}

func (s *communityService) Create(ctx context.Context, creator domain.ActorRef, input CreateCommunityInput) (*domain.Community, error) {
	if err := creator.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, apierr.InvalidArgument(fmt.Errorf("invalid community slug %q", input.Slug))
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = slug
	}

	rows, err := s.communities.Create(dbctx.Context{Ctx: ctx}, []*domain.Community{{
		Slug:          slug,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		CreatedByType: creator.Type,
		CreatedByID:   creator.ID,
	}})
	if db.IsUniqueViolation(err) {
		return nil, apierr.Conflict(fmt.Errorf("community %q exists: %w", slug, err))
	}
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *communityService) GetBySlug(ctx context.Context, slug string) (*domain.Community, error) {
	out, err := s.communities.GetBySlug(dbctx.Context{Ctx: ctx}, strings.ToLower(strings.TrimSpace(slug)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound(fmt.Errorf("community %q not found", slug))
	}
	return out, err
}

func (s *communityService) List(ctx context.Context, limit int) ([]*domain.Community, error) {
	return s.communities.List(dbctx.Context{Ctx: ctx}, limit)
}
