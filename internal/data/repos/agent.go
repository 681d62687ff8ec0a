package repos

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type AgentRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Agent) ([]*domain.Agent, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Agent, error)
	GetByHandle(dbc dbctx.Context, handle string) (*domain.Agent, error)
	// LockByID takes the agent row FOR UPDATE; requires dbc.Tx. This is the
	// author-karma lock, always acquired after the target lock.
	LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agent, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type agentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgentRepo(db *gorm.DB, baseLog *logger.Logger) AgentRepo {
	return &agentRepo{db: db, log: baseLog.With("repo", "AgentRepo")}
}

func (r *agentRepo) Create(dbc dbctx.Context, rows []*domain.Agent) ([]*domain.Agent, error) {
	if len(rows) == 0 {
		return []*domain.Agent{}, nil
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

func (r *agentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Agent, error) {
	if len(ids) == 0 {
		return []*domain.Agent{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Agent
	if err := txx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *agentRepo) GetByHandle(dbc dbctx.Context, handle string) (*domain.Agent, error) {
	if handle == "" {
		return nil, fmt.Errorf("missing handle")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Agent
	if err := txx.WithContext(dbc.Ctx).
		Where("handle = ?", handle).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *agentRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*domain.Agent, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("missing id")
	}
	if dbc.Tx == nil {
		return nil, fmt.Errorf("LockByID requires dbc.Tx")
	}
	var out domain.Agent
	if err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *agentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	if len(updates) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&domain.Agent{}).
		Where("id = ?", id).
		Updates(updates).Error
}
