package repos

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

// VoteRepo is the ledger: one row per (actor, target), absent row means no
// vote. Rows are only touched from inside the vote service transaction.
type VoteRepo interface {
	// GetForUpdate returns the actor's current vote on target locked FOR
	// UPDATE, or nil if no row exists; requires dbc.Tx.
	GetForUpdate(dbc dbctx.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error)
	Create(dbc dbctx.Context, row *domain.Vote) error
	UpdateType(dbc dbctx.Context, id uuid.UUID, voteType domain.VoteType) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
	Get(dbc dbctx.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error)
	ListByTarget(dbc dbctx.Context, target domain.TargetRef) ([]*domain.Vote, error)
	CountByTarget(dbc dbctx.Context, target domain.TargetRef, voteType domain.VoteType) (int64, error)
}

type voteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVoteRepo(db *gorm.DB, baseLog *logger.Logger) VoteRepo {
	return &voteRepo{db: db, log: baseLog.With("repo", "VoteRepo")}
}

func (r *voteRepo) GetForUpdate(dbc dbctx.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error) {
	if dbc.Tx == nil {
		return nil, fmt.Errorf("GetForUpdate requires dbc.Tx")
	}
	var out domain.Vote
	err := dbc.Tx.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("actor_type = ? AND actor_id = ? AND target_type = ? AND target_id = ?",
			actor.Type, actor.ID, target.Type, target.ID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *voteRepo) Create(dbc dbctx.Context, row *domain.Vote) error {
	if row == nil {
		return fmt.Errorf("missing vote row")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Create(row).Error
}

func (r *voteRepo) UpdateType(dbc dbctx.Context, id uuid.UUID, voteType domain.VoteType) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&domain.Vote{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"vote_type":  voteType,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *voteRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("missing id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Vote{}).Error
}

func (r *voteRepo) Get(dbc dbctx.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out domain.Vote
	err := txx.WithContext(dbc.Ctx).
		Where("actor_type = ? AND actor_id = ? AND target_type = ? AND target_id = ?",
			actor.Type, actor.ID, target.Type, target.ID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *voteRepo) ListByTarget(dbc dbctx.Context, target domain.TargetRef) ([]*domain.Vote, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Vote
	if err := txx.WithContext(dbc.Ctx).
		Where("target_type = ? AND target_id = ?", target.Type, target.ID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *voteRepo) CountByTarget(dbc dbctx.Context, target domain.TargetRef, voteType domain.VoteType) (int64, error) {
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var n int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Vote{}).
		Where("target_type = ? AND target_id = ? AND vote_type = ?", target.Type, target.ID, voteType).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
