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

type CommentRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Comment) ([]*domain.Comment, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Comment, error)
	ListByPost(dbc dbctx.Context, postID uuid.UUID, limit int) ([]*domain.Comment, error)
	// LockByID takes the comment row FOR UPDATE; requires dbc.Tx.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{db: db, log: baseLog.With("repo", "CommentRepo")}
}

func (r *commentRepo) Create(dbc dbctx.Context, rows []*domain.Comment) ([]*domain.Comment, error) {
	if len(rows) == 0 {
		return []*domain.Comment{}, nil
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

func (r *commentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Comment, error) {
	if len(ids) == 0 {
		return []*domain.Comment{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Comment
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *commentRepo) ListByPost(dbc dbctx.Context, postID uuid.UUID, limit int) ([]*domain.Comment, error) {
	if postID == uuid.Nil {
		return nil, fmt.Errorf("missing post_id")
	}
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Comment
	if err := txx.WithContext(dbc.Ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *commentRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Comment, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out domain.Comment
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *commentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Comment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *commentRepo) SoftDeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Comment{}).Error
}
