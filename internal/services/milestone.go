package services

import (
	"encoding/json"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/envutil"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

var defaultMilestones = []int{10, 50, 100, 500}

// milestoneChecker records a milestone notification when a post's upvote
// count lands exactly on a configured threshold. The row is written in the
// same transaction as the counter update; the partial unique index on
// (target_id, threshold) makes the insert a no-op on replay, so each
// milestone is recorded at most once per post.
type milestoneChecker struct {
	thresholds    []int64
	notifications repos.NotificationRepo
	log           *logger.Logger
}

func newMilestoneChecker(notifications repos.NotificationRepo, baseLog *logger.Logger) *milestoneChecker {
	log := baseLog.With("service", "MilestoneChecker")
	raw := envutil.GetEnvAsInts("MILESTONE_THRESHOLDS", defaultMilestones, log)
	thresholds := make([]int64, 0, len(raw))
	for _, t := range raw {
		if t > 0 {
			thresholds = append(thresholds, int64(t))
		}
	}
	return &milestoneChecker{
		thresholds:    thresholds,
		notifications: notifications,
		log:           log,
	}
}

// onUpvoteCount is called with a post's new upvote count while the post row
// is still locked. It returns the inserted notification for post-commit
// delivery, or nil when no threshold was hit, the voter is the author, or
// the milestone was already recorded.
func (c *milestoneChecker) onUpvoteCount(dbc dbctx.Context, post *domain.Post, voter domain.ActorRef, upvotes int64) (*domain.Notification, error) {
	var hit int64
	for _, t := range c.thresholds {
		if upvotes == t {
			hit = t
			break
		}
	}
	if hit == 0 {
		return nil, nil
	}

	recipient := post.Author()
	if recipient.Validate() != nil || recipient.Equal(voter) {
		return nil, nil
	}

	data, _ := json.Marshal(map[string]any{
		"post_title": post.Title,
		"upvotes":    upvotes,
	})
	row := &domain.Notification{
		RecipientType: recipient.Type,
		RecipientID:   recipient.ID,
		Type:          domain.NotificationMilestone,
		ActorType:     voter.Type,
		ActorID:       voter.ID,
		TargetType:    domain.TargetPost,
		TargetID:      post.ID,
		Threshold:     &hit,
		Data:          data,
	}
	inserted, err := c.notifications.CreateMilestone(dbc, row)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	c.log.Info("milestone recorded", "post_id", post.ID, "threshold", hit)
	return row, nil
}
