package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/data/repos/testutil"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
)

// voteHarness commits real transactions, so fixtures are created on the
// shared connection and removed in cleanup rather than rolled back.
type voteHarness struct {
	gdb   *gorm.DB
	svc   VoteService
	votes repos.VoteRepo

	agent     *domain.Agent
	voter     *domain.Human
	voter2    *domain.Human
	community *domain.Community
	post      *domain.Post
}

func newVoteHarness(t *testing.T) *voteHarness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	agents := repos.NewAgentRepo(gdb, log)
	posts := repos.NewPostRepo(gdb, log)
	comments := repos.NewCommentRepo(gdb, log)
	votes := repos.NewVoteRepo(gdb, log)
	notifications := repos.NewNotificationRepo(gdb, log)

	svc := NewVoteService(gdb, votes, posts, comments, agents, notifications,
		NewNotifier(nil, log), log)

	agent := testutil.NewAgent(t, gdb)
	voter := testutil.NewHuman(t, gdb)
	voter2 := testutil.NewHuman(t, gdb)
	community := testutil.NewCommunity(t, gdb, domain.HumanActor(voter.ID))
	post := testutil.NewPost(t, gdb, community.ID, domain.AgentActor(agent.ID))

	t.Cleanup(func() {
		gdb.Where("target_id = ?", post.ID).Delete(&domain.Vote{})
		gdb.Where("target_id = ?", post.ID).Delete(&domain.Notification{})
		gdb.Unscoped().Where("id = ?", post.ID).Delete(&domain.Post{})
		gdb.Unscoped().Where("id = ?", community.ID).Delete(&domain.Community{})
		gdb.Unscoped().Where("id IN ?", []uuid.UUID{voter.ID, voter2.ID}).Delete(&domain.Human{})
		gdb.Unscoped().Where("id = ?", agent.ID).Delete(&domain.Agent{})
	})

	return &voteHarness{
		gdb:       gdb,
		svc:       svc,
		votes:     votes,
		agent:     agent,
		voter:     voter,
		voter2:    voter2,
		community: community,
		post:      post,
	}
}

func (h *voteHarness) reloadPost(t *testing.T) *domain.Post {
	t.Helper()
	var out domain.Post
	if err := h.gdb.Where("id = ?", h.post.ID).Take(&out).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return &out
}

func (h *voteHarness) agentKarma(t *testing.T) int64 {
	t.Helper()
	var out domain.Agent
	if err := h.gdb.Where("id = ?", h.agent.ID).Take(&out).Error; err != nil {
		t.Fatalf("reload agent: %v", err)
	}
	return out.Karma
}

func TestCastLifecycle(t *testing.T) {
	h := newVoteHarness(t)
	ctx := context.Background()
	actor := domain.HumanActor(h.voter.ID)
	target := domain.PostTarget(h.post.ID)

	// none → up
	res, err := h.svc.Cast(ctx, actor, target, domain.VoteUp)
	if err != nil {
		t.Fatalf("cast up: %v", err)
	}
	if res.Previous != VoteStateNone || res.Current != VoteStateUp {
		t.Fatalf("unexpected transition: %+v", res)
	}
	if res.Upvotes != 1 || res.Downvotes != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if karma := h.agentKarma(t); karma != 1 {
		t.Fatalf("karma after up: got=%d want=1", karma)
	}

	// up → down (switch)
	res, err = h.svc.Cast(ctx, actor, target, domain.VoteDown)
	if err != nil {
		t.Fatalf("switch to down: %v", err)
	}
	if res.Upvotes != 0 || res.Downvotes != 1 {
		t.Fatalf("unexpected counters after switch: %+v", res)
	}
	if karma := h.agentKarma(t); karma != -1 {
		t.Fatalf("karma after switch: got=%d want=-1", karma)
	}

	// down → none (retraction)
	res, err = h.svc.Cast(ctx, actor, target, domain.VoteDown)
	if err != nil {
		t.Fatalf("retract down: %v", err)
	}
	if res.Current != VoteStateNone || res.Upvotes != 0 || res.Downvotes != 0 {
		t.Fatalf("unexpected state after retraction: %+v", res)
	}
	if karma := h.agentKarma(t); karma != 0 {
		t.Fatalf("karma after retraction: got=%d want=0", karma)
	}

	// Ledger row gone after retraction.
	vote, err := h.svc.Get(ctx, actor, target)
	if err != nil {
		t.Fatalf("get vote: %v", err)
	}
	if vote != nil {
		t.Fatalf("ledger row survived retraction: %+v", vote)
	}

	post := h.reloadPost(t)
	if post.Upvotes != 0 || post.Downvotes != 0 {
		t.Fatalf("persisted counters drifted: up=%d down=%d", post.Upvotes, post.Downvotes)
	}
}

func TestCastSelfVoteForbidden(t *testing.T) {
	h := newVoteHarness(t)

	_, err := h.svc.Cast(context.Background(), domain.AgentActor(h.agent.ID),
		domain.PostTarget(h.post.ID), domain.VoteUp)
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if karma := h.agentKarma(t); karma != 0 {
		t.Fatalf("self vote changed karma: %d", karma)
	}
}

func TestCastMissingTargetNotFound(t *testing.T) {
	h := newVoteHarness(t)

	_, err := h.svc.Cast(context.Background(), domain.HumanActor(h.voter.ID),
		domain.PostTarget(uuid.New()), domain.VoteUp)
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCastCommentTarget(t *testing.T) {
	h := newVoteHarness(t)
	ctx := context.Background()
	comment := testutil.NewComment(t, h.gdb, h.post.ID, domain.AgentActor(h.agent.ID))
	t.Cleanup(func() {
		h.gdb.Where("target_id = ?", comment.ID).Delete(&domain.Vote{})
		h.gdb.Unscoped().Where("id = ?", comment.ID).Delete(&domain.Comment{})
	})

	res, err := h.svc.Cast(ctx, domain.HumanActor(h.voter.ID),
		domain.CommentTarget(comment.ID), domain.VoteDown)
	if err != nil {
		t.Fatalf("cast on comment: %v", err)
	}
	if res.Upvotes != 0 || res.Downvotes != 1 {
		t.Fatalf("unexpected comment counters: %+v", res)
	}
	if karma := h.agentKarma(t); karma != -1 {
		t.Fatalf("comment downvote karma: got=%d want=-1", karma)
	}
}

func TestConcurrentOppositeVotes(t *testing.T) {
	h := newVoteHarness(t)
	ctx := context.Background()
	target := domain.PostTarget(h.post.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = h.svc.Cast(ctx, domain.HumanActor(h.voter.ID), target, domain.VoteUp)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = h.svc.Cast(ctx, domain.HumanActor(h.voter2.ID), target, domain.VoteDown)
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent cast %d: %v", i, err)
		}
	}
	post := h.reloadPost(t)
	if post.Upvotes != 1 || post.Downvotes != 1 {
		t.Fatalf("lost update: up=%d down=%d", post.Upvotes, post.Downvotes)
	}
	if karma := h.agentKarma(t); karma != 0 {
		t.Fatalf("karma after opposite votes: got=%d want=0", karma)
	}
}

func TestMilestoneRecordedExactlyOnce(t *testing.T) {
	t.Setenv("MILESTONE_THRESHOLDS", "2")
	h := newVoteHarness(t)
	ctx := context.Background()
	target := domain.PostTarget(h.post.ID)

	countMilestones := func() int64 {
		var n int64
		if err := h.gdb.Model(&domain.Notification{}).
			Where("target_id = ? AND type = ?", h.post.ID, domain.NotificationMilestone).
			Count(&n).Error; err != nil {
			t.Fatalf("count milestones: %v", err)
		}
		return n
	}

	if _, err := h.svc.Cast(ctx, domain.HumanActor(h.voter.ID), target, domain.VoteUp); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if n := countMilestones(); n != 0 {
		t.Fatalf("milestone before threshold: %d", n)
	}

	if _, err := h.svc.Cast(ctx, domain.HumanActor(h.voter2.ID), target, domain.VoteUp); err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if n := countMilestones(); n != 1 {
		t.Fatalf("milestone at threshold: got=%d want=1", n)
	}

	// Retract and re-cast so the counter crosses the threshold again; the
	// unique index keeps the record single.
	if _, err := h.svc.Cast(ctx, domain.HumanActor(h.voter2.ID), target, domain.VoteUp); err != nil {
		t.Fatalf("retraction: %v", err)
	}
	if _, err := h.svc.Cast(ctx, domain.HumanActor(h.voter2.ID), target, domain.VoteUp); err != nil {
		t.Fatalf("re-cast: %v", err)
	}
	if n := countMilestones(); n != 1 {
		t.Fatalf("milestone duplicated on replay: got=%d", n)
	}

	// Recipient is the post author.
	var row domain.Notification
	if err := h.gdb.Where("target_id = ? AND type = ?", h.post.ID, domain.NotificationMilestone).
		Take(&row).Error; err != nil {
		t.Fatalf("load milestone: %v", err)
	}
	if row.RecipientType != domain.ActorAgent || row.RecipientID != h.agent.ID {
		t.Fatalf("milestone recipient wrong: %s:%s", row.RecipientType, row.RecipientID)
	}
	if row.Threshold == nil || *row.Threshold != 2 {
		t.Fatalf("milestone threshold wrong: %v", row.Threshold)
	}
}
