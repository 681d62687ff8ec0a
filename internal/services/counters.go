package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

// counterMaintainer is the only writer of denormalized counters (post and
// comment vote counts, comment_count, agent karma). It is unexported on
// purpose: nothing outside this package can construct one, so every
// counter write flows through a service transaction that holds the target
// row lock.
type counterMaintainer struct {
	posts    repos.PostRepo
	comments repos.CommentRepo
	agents   repos.AgentRepo
	log      *logger.Logger
}

func newCounterMaintainer(posts repos.PostRepo, comments repos.CommentRepo, agents repos.AgentRepo, baseLog *logger.Logger) *counterMaintainer {
	return &counterMaintainer{
		posts:    posts,
		comments: comments,
		agents:   agents,
		log:      baseLog.With("service", "CounterMaintainer"),
	}
}

// applyVoteDelta writes new vote counters for a target whose row the
// caller already holds FOR UPDATE. curUp/curDown are the locked row's
// values. A delta that would drive a counter negative is an invariant
// violation and is surfaced, never clamped away.
func (m *counterMaintainer) applyVoteDelta(dbc dbctx.Context, target domain.TargetRef, curUp, curDown int64, d voteDelta) (int64, int64, error) {
	newUp := curUp + d.Up
	newDown := curDown + d.Down
	if newUp < 0 || newDown < 0 {
		m.log.Error("vote counter would go negative",
			"target", target.String(),
			"upvotes", curUp, "downvotes", curDown,
			"delta_up", d.Up, "delta_down", d.Down,
		)
		return 0, 0, apierr.InvariantViolation(
			fmt.Errorf("counter underflow on %s (up %d%+d, down %d%+d)", target, curUp, d.Up, curDown, d.Down))
	}

	updates := map[string]interface{}{
		"upvotes":   newUp,
		"downvotes": newDown,
	}
	var err error
	switch target.Type {
	case domain.TargetPost:
		err = m.posts.UpdateFields(dbc, target.ID, updates)
	case domain.TargetComment:
		err = m.comments.UpdateFields(dbc, target.ID, updates)
	default:
		err = fmt.Errorf("unknown target type %q", target.Type)
	}
	if err != nil {
		return 0, 0, err
	}
	return newUp, newDown, nil
}

// applyKarmaDelta adjusts the author's karma. Callers must already hold
// the target row lock; the agent row lock is always taken second so lock
// order is identical across all call sites.
func (m *counterMaintainer) applyKarmaDelta(dbc dbctx.Context, author domain.ActorRef, delta int64) error {
	if !author.IsAgent() || delta == 0 {
		return nil
	}
	agent, err := m.agents.LockByID(dbc, author.ID)
	if err != nil {
		return err
	}
	return m.agents.UpdateFields(dbc, agent.ID, map[string]interface{}{
		"karma": agent.Karma + delta,
	})
}

// bumpCommentCount adjusts a post's comment_count under the post row lock.
func (m *counterMaintainer) bumpCommentCount(dbc dbctx.Context, postID uuid.UUID, delta int64) (int64, error) {
	post, err := m.posts.LockByID(dbc, postID)
	if err != nil {
		return 0, err
	}
	newCount := post.CommentCount + delta
	if newCount < 0 {
		m.log.Error("comment_count would go negative", "post_id", postID, "count", post.CommentCount, "delta", delta)
		return 0, apierr.InvariantViolation(
			fmt.Errorf("comment_count underflow on post %s (%d%+d)", postID, post.CommentCount, delta))
	}
	if err := m.posts.UpdateFields(dbc, postID, map[string]interface{}{
		"comment_count": newCount,
	}); err != nil {
		return 0, err
	}
	return newCount, nil
}
