package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/db"
	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/envutil"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

// VoteResult reports the transition a cast produced plus the target's
// counters as written by this transaction.
type VoteResult struct {
	Target    domain.TargetRef `json:"target"`
	Previous  VoteState        `json:"previous"`
	Current   VoteState        `json:"current"`
	Upvotes   int64            `json:"upvotes"`
	Downvotes int64            `json:"downvotes"`
}

type VoteService interface {
	// Cast applies one vote action. Casting the direction already held
	// retracts it; casting the opposite flips it. The ledger write, counter
	// update, karma update and milestone record commit atomically.
	Cast(ctx context.Context, actor domain.ActorRef, target domain.TargetRef, direction domain.VoteType) (*VoteResult, error)
	Get(ctx context.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error)
}

type voteService struct {
	db         *gorm.DB
	votes      repos.VoteRepo
	posts      repos.PostRepo
	comments   repos.CommentRepo
	counters   *counterMaintainer
	milestones *milestoneChecker
	notifier   Notifier
	lockWaitMS int
	log        *logger.Logger
}

func NewVoteService(
	gdb *gorm.DB,
	votes repos.VoteRepo,
	posts repos.PostRepo,
	comments repos.CommentRepo,
	agents repos.AgentRepo,
	notifications repos.NotificationRepo,
	notifier Notifier,
	baseLog *logger.Logger,
) VoteService {
	log := baseLog.With("service", "VoteService")
	return &voteService{
		db:         gdb,
		votes:      votes,
		posts:      posts,
		comments:   comments,
		counters:   newCounterMaintainer(posts, comments, agents, baseLog),
		milestones: newMilestoneChecker(notifications, baseLog),
		notifier:   notifier,
		lockWaitMS: envutil.GetEnvAsInt("VOTE_LOCK_TIMEOUT_MS", 3000, log),
		log:        log,
	}
}

func (s *voteService) Cast(ctx context.Context, actor domain.ActorRef, target domain.TargetRef, direction domain.VoteType) (*VoteResult, error) {
	if err := actor.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	if err := target.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	if direction != domain.VoteUp && direction != domain.VoteDown {
		return nil, apierr.InvalidArgument(fmt.Errorf("unknown vote direction %q", direction))
	}

	var (
		out       *VoteResult
		milestone *domain.Notification
	)

	run := func(dbc dbctx.Context) error {
		// Bound the wait on every row lock below so a pile-up degrades into
		// retryable conflicts instead of queued requests.
		if err := dbc.Tx.WithContext(dbc.Ctx).
			Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockWaitMS)).Error; err != nil {
			return err
		}

		// Target row lock is always taken first, the author karma lock
		// second (inside applyKarmaDelta). One order, no deadlocks.
		var (
			author         domain.ActorRef
			curUp, curDown int64
			post           *domain.Post
		)
		switch target.Type {
		case domain.TargetPost:
			p, err := s.posts.LockByID(dbc, target.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(fmt.Errorf("post %s not found", target.ID))
			}
			if err != nil {
				return err
			}
			post = p
			author, curUp, curDown = p.Author(), p.Upvotes, p.Downvotes
		case domain.TargetComment:
			c, err := s.comments.LockByID(dbc, target.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(fmt.Errorf("comment %s not found", target.ID))
			}
			if err != nil {
				return err
			}
			author, curUp, curDown = c.Author(), c.Upvotes, c.Downvotes
		default:
			return apierr.InvalidArgument(fmt.Errorf("unknown target type %q", target.Type))
		}

		if author.Equal(actor) {
			return apierr.Forbidden(fmt.Errorf("%s cannot vote on their own %s", actor, target.Type))
		}

		prevRow, err := s.votes.GetForUpdate(dbc, actor, target)
		if err != nil {
			return err
		}
		prev := stateOf(prevRow)
		next := nextState(prev, direction)
		d, err := transitionDelta(prev, next)
		if err != nil {
			return err
		}

		switch {
		case prev == VoteStateNone:
			if err := s.votes.Create(dbc, &domain.Vote{
				ActorType:  actor.Type,
				ActorID:    actor.ID,
				TargetType: target.Type,
				TargetID:   target.ID,
				VoteType:   direction,
			}); err != nil {
				return err
			}
		case next == VoteStateNone:
			if err := s.votes.DeleteByID(dbc, prevRow.ID); err != nil {
				return err
			}
		default:
			if err := s.votes.UpdateType(dbc, prevRow.ID, direction); err != nil {
				return err
			}
		}

		newUp, newDown, err := s.counters.applyVoteDelta(dbc, target, curUp, curDown, d)
		if err != nil {
			return err
		}
		if err := s.counters.applyKarmaDelta(dbc, author, d.Karma); err != nil {
			return err
		}

		if post != nil && newUp > curUp {
			n, err := s.milestones.onUpvoteCount(dbc, post, actor, newUp)
			if err != nil {
				return err
			}
			milestone = n
		}

		out = &VoteResult{
			Target:    target,
			Previous:  prev,
			Current:   next,
			Upvotes:   newUp,
			Downvotes: newDown,
		}
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return run(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err != nil {
		return nil, s.mapCastError(err, actor, target)
	}

	// The transaction is committed; delivery happens outside it.
	if milestone != nil {
		s.notifier.NotificationCreated(ctx, milestone)
	}
	return out, nil
}

// mapCastError classifies transaction failures. Conflicts committed nothing
// and are safe for the caller to retry with backoff.
func (s *voteService) mapCastError(err error, actor domain.ActorRef, target domain.TargetRef) error {
	if ae := apierr.From(err); ae != nil {
		return ae
	}
	switch {
	case db.IsLockContention(err):
		s.log.Warn("vote lost lock race", "actor", actor.String(), "target", target.String(), "error", err)
		return apierr.Conflict(fmt.Errorf("vote on %s lost a lock race: %w", target, err))
	case db.IsUniqueViolation(err):
		// Two first votes from the same actor raced; one ledger row won.
		return apierr.Conflict(fmt.Errorf("concurrent vote on %s: %w", target, err))
	case db.IsCheckViolation(err):
		s.log.Error("counter check constraint tripped", "actor", actor.String(), "target", target.String(), "error", err)
		return apierr.InvariantViolation(fmt.Errorf("counter constraint on %s: %w", target, err))
	}
	return err
}

func (s *voteService) Get(ctx context.Context, actor domain.ActorRef, target domain.TargetRef) (*domain.Vote, error) {
	if err := actor.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	if err := target.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	return s.votes.Get(dbctx.Context{Ctx: ctx}, actor, target)
}
