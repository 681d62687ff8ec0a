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

type PostRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Post) ([]*domain.Post, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Post, error)
	ListByCommunity(dbc dbctx.Context, communityID uuid.UUID, limit int) ([]*domain.Post, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*domain.Post, error)
	// LockByID takes the post row FOR UPDATE; requires dbc.Tx. This is the
	// serialization point for all counter transitions on the post.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Post, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return &postRepo{db: db, log: baseLog.With("repo", "PostRepo")}
}

func (r *postRepo) Create(dbc dbctx.Context, rows []*domain.Post) ([]*domain.Post, error) {
	if len(rows) == 0 {
		return []*domain.Post{}, nil
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

func (r *postRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Post, error) {
	if len(ids) == 0 {
		return []*domain.Post{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Post
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepo) ListByCommunity(dbc dbctx.Context, communityID uuid.UUID, limit int) ([]*domain.Post, error) {
	if communityID == uuid.Nil {
		return nil, fmt.Errorf("missing community_id")
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Post
	if err := txx.WithContext(dbc.Ctx).
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepo) ListRecent(dbc dbctx.Context, limit int) ([]*domain.Post, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Post
	if err := txx.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Post, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out domain.Post
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now().UTC()
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&domain.Post{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *postRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Post{}).Error
}
