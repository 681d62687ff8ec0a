package repos

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type CommunityRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Community) ([]*domain.Community, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Community, error)
	GetBySlug(dbc dbctx.Context, slug string) (*domain.Community, error)
	List(dbc dbctx.Context, limit int) ([]*domain.Community, error)
}

type communityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunityRepo(db *gorm.DB, baseLog *logger.Logger) CommunityRepo {
	return &communityRepo{db: db, log: baseLog.With("repo", "CommunityRepo")}
}

func (r *communityRepo) Create(dbc dbctx.Context, rows []*domain.Community) ([]*domain.Community, error) {
	if len(rows) == 0 {
		return []*domain.Community{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *communityRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Community, error) {
	if len(ids) == 0 {
		return []*domain.Community{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Community
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *communityRepo) GetBySlug(dbc dbctx.Context, slug string) (*domain.Community, error) {
	if slug == "" {
		return nil, fmt.Errorf("missing slug")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Community
	if err := txx.WithContext(dbc.Ctx).
		Where("slug = ?", slug).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *communityRepo) List(dbc dbctx.Context, limit int) ([]*domain.Community, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Community
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
