package services

import (
	"testing"

	"github.com/agoralabs/agora-backend/internal/domain"
)

func TestNextState(t *testing.T) {
	t.Parallel()
	cases := []struct {
		prev      VoteState
		requested domain.VoteType
		want      VoteState
	}{
		{VoteStateNone, domain.VoteUp, VoteStateUp},
		{VoteStateNone, domain.VoteDown, VoteStateDown},
		{VoteStateUp, domain.VoteUp, VoteStateNone},
		{VoteStateDown, domain.VoteDown, VoteStateNone},
		{VoteStateUp, domain.VoteDown, VoteStateDown},
		{VoteStateDown, domain.VoteUp, VoteStateUp},
	}
	for _, tc := range cases {
		if got := nextState(tc.prev, tc.requested); got != tc.want {
			t.Errorf("nextState(%s, %s): got=%s want=%s", tc.prev, tc.requested, got, tc.want)
		}
	}
}

func TestTransitionDelta(t *testing.T) {
	t.Parallel()
	cases := []struct {
		prev, next VoteState
		want       voteDelta
	}{
		{VoteStateNone, VoteStateUp, voteDelta{Up: 1, Karma: 1}},
		{VoteStateNone, VoteStateDown, voteDelta{Down: 1, Karma: -1}},
		{VoteStateUp, VoteStateDown, voteDelta{Up: -1, Down: 1, Karma: -2}},
		{VoteStateDown, VoteStateUp, voteDelta{Up: 1, Down: -1, Karma: 2}},
		{VoteStateUp, VoteStateNone, voteDelta{Up: -1, Karma: -1}},
		{VoteStateDown, VoteStateNone, voteDelta{Down: -1, Karma: 1}},
	}
	for _, tc := range cases {
		got, err := transitionDelta(tc.prev, tc.next)
		if err != nil {
			t.Errorf("transitionDelta(%s, %s): %v", tc.prev, tc.next, err)
			continue
		}
		if got != tc.want {
			t.Errorf("transitionDelta(%s, %s): got=%+v want=%+v", tc.prev, tc.next, got, tc.want)
		}
	}
}

func TestTransitionDeltaRejectsNoOps(t *testing.T) {
	t.Parallel()
	for _, s := range []VoteState{VoteStateNone, VoteStateUp, VoteStateDown} {
		if _, err := transitionDelta(s, s); err == nil {
			t.Errorf("transitionDelta(%s, %s): expected error", s, s)
		}
	}
}

// Any cast followed by its retraction must sum to zero on every counter,
// and a switch must equal retraction plus opposite cast.
func TestTransitionDeltaConservation(t *testing.T) {
	t.Parallel()

	sum := func(ds ...voteDelta) voteDelta {
		var out voteDelta
		for _, d := range ds {
			out.Up += d.Up
			out.Down += d.Down
			out.Karma += d.Karma
		}
		return out
	}

	castUp, _ := transitionDelta(VoteStateNone, VoteStateUp)
	retractUp, _ := transitionDelta(VoteStateUp, VoteStateNone)
	if got := sum(castUp, retractUp); got != (voteDelta{}) {
		t.Fatalf("up cast+retract not conserved: %+v", got)
	}

	castDown, _ := transitionDelta(VoteStateNone, VoteStateDown)
	retractDown, _ := transitionDelta(VoteStateDown, VoteStateNone)
	if got := sum(castDown, retractDown); got != (voteDelta{}) {
		t.Fatalf("down cast+retract not conserved: %+v", got)
	}

	switchUpDown, _ := transitionDelta(VoteStateUp, VoteStateDown)
	if got, want := sum(castUp, switchUpDown), castDown; got != want {
		t.Fatalf("up→down switch inconsistent: got=%+v want=%+v", got, want)
	}

	switchDownUp, _ := transitionDelta(VoteStateDown, VoteStateUp)
	if got, want := sum(castDown, switchDownUp), castUp; got != want {
		t.Fatalf("down→up switch inconsistent: got=%+v want=%+v", got, want)
	}
}

func TestStateOf(t *testing.T) {
	t.Parallel()
	if got := stateOf(nil); got != VoteStateNone {
		t.Fatalf("stateOf(nil): got=%s", got)
	}
	if got := stateOf(&domain.Vote{VoteType: domain.VoteUp}); got != VoteStateUp {
		t.Fatalf("stateOf(up): got=%s", got)
	}
	if got := stateOf(&domain.Vote{VoteType: domain.VoteDown}); got != VoteStateDown {
		t.Fatalf("stateOf(down): got=%s", got)
	}
}
