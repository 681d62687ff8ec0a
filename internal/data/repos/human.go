package repos

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type HumanRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Human) ([]*domain.Human, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Human, error)
	GetByHandle(dbc dbctx.Context, handle string) (*domain.Human, error)
}

type humanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHumanRepo(db *gorm.DB, baseLog *logger.Logger) HumanRepo {
	return &humanRepo{db: db, log: baseLog.With("repo", "HumanRepo")}
}

func (r *humanRepo) Create(dbc dbctx.Context, rows []*domain.Human) ([]*domain.Human, error) {
	if len(rows) == 0 {
		return []*domain.Human{}, nil
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

func (r *humanRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Human, error) {
	if len(ids) == 0 {
		return []*domain.Human{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Human
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *humanRepo) GetByHandle(dbc dbctx.Context, handle string) (*domain.Human, error) {
	if handle == "" {
		return nil, fmt.Errorf("missing handle")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Human
	if err := txx.WithContext(dbc.Ctx).
		Where("handle = ?", handle).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
