package repos_test

import (
	"context"
	"testing"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/data/repos/testutil"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
)

func TestVoteRepoLedgerRoundTrip(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	voteRepo := repos.NewVoteRepo(gdb, log)

	agent := testutil.NewAgent(t, tx)
	human := testutil.NewHuman(t, tx)
	community := testutil.NewCommunity(t, tx, domain.HumanActor(human.ID))
	post := testutil.NewPost(t, tx, community.ID, domain.AgentActor(agent.ID))

	actor := domain.HumanActor(human.ID)
	target := domain.PostTarget(post.ID)

	// Absent row reads as nil, not an error.
	got, err := voteRepo.GetForUpdate(dbc, actor, target)
	if err != nil {
		t.Fatalf("GetForUpdate empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil vote, got %+v", got)
	}

	row := &domain.Vote{
		ActorType:  actor.Type,
		ActorID:    actor.ID,
		TargetType: target.Type,
		TargetID:   target.ID,
		VoteType:   domain.VoteUp,
	}
	if err := voteRepo.Create(dbc, row); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err = voteRepo.GetForUpdate(dbc, actor, target)
	if err != nil {
		t.Fatalf("GetForUpdate: %v", err)
	}
	if got == nil || got.VoteType != domain.VoteUp {
		t.Fatalf("unexpected vote: %+v", got)
	}

	if err := voteRepo.UpdateType(dbc, got.ID, domain.VoteDown); err != nil {
		t.Fatalf("UpdateType: %v", err)
	}
	got, err = voteRepo.Get(dbc, actor, target)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VoteType != domain.VoteDown {
		t.Fatalf("vote type not updated: %+v", got)
	}

	n, err := voteRepo.CountByTarget(dbc, target, domain.VoteDown)
	if err != nil {
		t.Fatalf("CountByTarget: %v", err)
	}
	if n != 1 {
		t.Fatalf("unexpected count: %d", n)
	}

	if err := voteRepo.DeleteByID(dbc, got.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	got, err = voteRepo.Get(dbc, actor, target)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("vote survived delete: %+v", got)
	}
}

func TestVoteRepoUniquePerActorTarget(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	voteRepo := repos.NewVoteRepo(gdb, log)

	agent := testutil.NewAgent(t, tx)
	human := testutil.NewHuman(t, tx)
	community := testutil.NewCommunity(t, tx, domain.HumanActor(human.ID))
	post := testutil.NewPost(t, tx, community.ID, domain.AgentActor(agent.ID))

	mk := func() *domain.Vote {
		return &domain.Vote{
			ActorType:  domain.ActorHuman,
			ActorID:    human.ID,
			TargetType: domain.TargetPost,
			TargetID:   post.ID,
			VoteType:   domain.VoteUp,
		}
	}
	if err := voteRepo.Create(dbc, mk()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := voteRepo.Create(dbc, mk()); err == nil {
		t.Fatal("second ledger row for same (actor, target) was accepted")
	}
}

func TestVoteRepoGetForUpdateRequiresTx(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	voteRepo := repos.NewVoteRepo(gdb, log)

	_, err := voteRepo.GetForUpdate(
		dbctx.Context{Ctx: context.Background()},
		domain.HumanActor(testutil.NewHuman(t, testutil.Tx(t, gdb)).ID),
		domain.TargetRef{},
	)
	if err == nil {
		t.Fatal("expected error without dbc.Tx")
	}
}
