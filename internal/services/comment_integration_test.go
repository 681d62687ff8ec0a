package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/data/repos/testutil"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
)

type commentHarness struct {
	gdb  *gorm.DB
	svc  CommentService
	post *domain.Post

	agent *domain.Agent
	human *domain.Human
}

func newCommentHarness(t *testing.T) *commentHarness {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	agents := repos.NewAgentRepo(gdb, log)
	posts := repos.NewPostRepo(gdb, log)
	comments := repos.NewCommentRepo(gdb, log)
	notifications := repos.NewNotificationRepo(gdb, log)

	svc := NewCommentService(gdb, posts, comments, agents, notifications,
		NewNotifier(nil, log), log)

	agent := testutil.NewAgent(t, gdb)
	human := testutil.NewHuman(t, gdb)
	community := testutil.NewCommunity(t, gdb, domain.HumanActor(human.ID))
	post := testutil.NewPost(t, gdb, community.ID, domain.AgentActor(agent.ID))

	t.Cleanup(func() {
		gdb.Unscoped().Where("post_id = ?", post.ID).Delete(&domain.Comment{})
		gdb.Where("actor_id IN ?", []uuid.UUID{agent.ID, human.ID}).Delete(&domain.Notification{})
		gdb.Unscoped().Where("id = ?", post.ID).Delete(&domain.Post{})
		gdb.Unscoped().Where("id = ?", community.ID).Delete(&domain.Community{})
		gdb.Unscoped().Where("id = ?", human.ID).Delete(&domain.Human{})
		gdb.Unscoped().Where("id = ?", agent.ID).Delete(&domain.Agent{})
	})

	return &commentHarness{gdb: gdb, svc: svc, post: post, agent: agent, human: human}
}

func (h *commentHarness) commentCount(t *testing.T) int64 {
	t.Helper()
	var out domain.Post
	if err := h.gdb.Where("id = ?", h.post.ID).Take(&out).Error; err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return out.CommentCount
}

func TestCommentCreateBumpsCount(t *testing.T) {
	h := newCommentHarness(t)
	ctx := context.Background()

	c, err := h.svc.Create(ctx, domain.HumanActor(h.human.ID), CreateCommentInput{
		PostID: h.post.ID,
		Body:   "first",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if got := h.commentCount(t); got != 1 {
		t.Fatalf("comment_count after create: got=%d want=1", got)
	}

	if err := h.svc.Delete(ctx, domain.HumanActor(h.human.ID), c.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if got := h.commentCount(t); got != 0 {
		t.Fatalf("comment_count after delete: got=%d want=0", got)
	}
}

func TestCommentReplyNotifiesParentAuthor(t *testing.T) {
	h := newCommentHarness(t)
	ctx := context.Background()

	parent, err := h.svc.Create(ctx, domain.AgentActor(h.agent.ID), CreateCommentInput{
		PostID: h.post.ID,
		Body:   "parent",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	if _, err := h.svc.Create(ctx, domain.HumanActor(h.human.ID), CreateCommentInput{
		PostID:          h.post.ID,
		ParentCommentID: &parent.ID,
		Body:            "reply",
	}); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	var rows []*domain.Notification
	if err := h.gdb.
		Where("recipient_id = ? AND type = ?", h.agent.ID, domain.NotificationReply).
		Find(&rows).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("reply notification count: got=%d want=1", len(rows))
	}
	if rows[0].TargetID != parent.ID {
		t.Fatalf("notification target wrong: %s", rows[0].TargetID)
	}
}

func TestCommentSelfReplyNotNotified(t *testing.T) {
	h := newCommentHarness(t)
	ctx := context.Background()

	parent, err := h.svc.Create(ctx, domain.AgentActor(h.agent.ID), CreateCommentInput{
		PostID: h.post.ID,
		Body:   "parent",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := h.svc.Create(ctx, domain.AgentActor(h.agent.ID), CreateCommentInput{
		PostID:          h.post.ID,
		ParentCommentID: &parent.ID,
		Body:            "self reply",
	}); err != nil {
		t.Fatalf("create self reply: %v", err)
	}

	var n int64
	if err := h.gdb.Model(&domain.Notification{}).
		Where("recipient_id = ? AND type = ?", h.agent.ID, domain.NotificationReply).
		Count(&n).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if n != 0 {
		t.Fatalf("self reply produced notification: %d", n)
	}
}

func TestCommentDeleteByStrangerForbidden(t *testing.T) {
	h := newCommentHarness(t)
	ctx := context.Background()

	c, err := h.svc.Create(ctx, domain.AgentActor(h.agent.ID), CreateCommentInput{
		PostID: h.post.ID,
		Body:   "keep out",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	err = h.svc.Delete(ctx, domain.HumanActor(h.human.ID), c.ID)
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCommentOnMissingPostNotFound(t *testing.T) {
	h := newCommentHarness(t)

	_, err := h.svc.Create(context.Background(), domain.HumanActor(h.human.ID), CreateCommentInput{
		PostID: uuid.New(),
		Body:   "orphan",
	})
	ae := apierr.From(err)
	if ae == nil || ae.Code != apierr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
