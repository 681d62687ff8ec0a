package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/data/repos/testutil"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
)

func TestCreateMilestoneDeduplicates(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	notifRepo := repos.NewNotificationRepo(gdb, log)

	agent := testutil.NewAgent(t, tx)
	human := testutil.NewHuman(t, tx)
	community := testutil.NewCommunity(t, tx, domain.HumanActor(human.ID))
	post := testutil.NewPost(t, tx, community.ID, domain.AgentActor(agent.ID))

	threshold := int64(10)
	mk := func() *domain.Notification {
		return &domain.Notification{
			RecipientType: domain.ActorAgent,
			RecipientID:   agent.ID,
			Type:          domain.NotificationMilestone,
			ActorType:     domain.ActorHuman,
			ActorID:       human.ID,
			TargetType:    domain.TargetPost,
			TargetID:      post.ID,
			Threshold:     &threshold,
		}
	}

	inserted, err := notifRepo.CreateMilestone(dbc, mk())
	if err != nil {
		t.Fatalf("first CreateMilestone: %v", err)
	}
	if !inserted {
		t.Fatal("first milestone not inserted")
	}

	inserted, err = notifRepo.CreateMilestone(dbc, mk())
	if err != nil {
		t.Fatalf("second CreateMilestone: %v", err)
	}
	if inserted {
		t.Fatal("duplicate milestone inserted")
	}

	// A different threshold on the same post is a distinct milestone.
	other := mk()
	otherThreshold := int64(50)
	other.Threshold = &otherThreshold
	inserted, err = notifRepo.CreateMilestone(dbc, other)
	if err != nil {
		t.Fatalf("distinct threshold CreateMilestone: %v", err)
	}
	if !inserted {
		t.Fatal("distinct threshold rejected")
	}
}

func TestCreateMilestoneValidatesRow(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	notifRepo := repos.NewNotificationRepo(gdb, log)
	dbc := dbctx.Context{Ctx: context.Background()}

	if _, err := notifRepo.CreateMilestone(dbc, &domain.Notification{
		Type: domain.NotificationReply,
	}); err == nil {
		t.Fatal("non-milestone row accepted")
	}
	if _, err := notifRepo.CreateMilestone(dbc, &domain.Notification{
		Type: domain.NotificationMilestone,
	}); err == nil {
		t.Fatal("missing threshold accepted")
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	notifRepo := repos.NewNotificationRepo(gdb, log)

	agent := testutil.NewAgent(t, tx)
	human := testutil.NewHuman(t, tx)
	community := testutil.NewCommunity(t, tx, domain.HumanActor(human.ID))
	post := testutil.NewPost(t, tx, community.ID, domain.AgentActor(agent.ID))

	row := &domain.Notification{
		RecipientType: domain.ActorAgent,
		RecipientID:   agent.ID,
		Type:          domain.NotificationReply,
		ActorType:     domain.ActorHuman,
		ActorID:       human.ID,
		TargetType:    domain.TargetPost,
		TargetID:      post.ID,
	}
	if err := notifRepo.Create(dbc, row); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another actor cannot mark it read.
	if err := notifRepo.MarkRead(dbc, domain.HumanActor(human.ID), []uuid.UUID{row.ID}); err != nil {
		t.Fatalf("MarkRead as stranger: %v", err)
	}
	rows, err := notifRepo.ListByRecipient(dbc, domain.AgentActor(agent.ID), 10)
	if err != nil {
		t.Fatalf("ListByRecipient: %v", err)
	}
	if len(rows) != 1 || rows[0].ReadAt != nil {
		t.Fatalf("notification read by wrong actor: %+v", rows)
	}

	if err := notifRepo.MarkRead(dbc, domain.AgentActor(agent.ID), []uuid.UUID{row.ID}); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	rows, err = notifRepo.ListByRecipient(dbc, domain.AgentActor(agent.ID), 10)
	if err != nil {
		t.Fatalf("ListByRecipient after read: %v", err)
	}
	if rows[0].ReadAt == nil {
		t.Fatal("notification not marked read")
	}
}
