package services

import (
	"fmt"

	"github.com/agoralabs/agora-backend/internal/domain"
)

// VoteState is a vote direction including the absent state. The ledger
// stores only up/down rows; "none" means no row.
type VoteState string

const (
	VoteStateNone VoteState = "none"
	VoteStateUp   VoteState = "up"
	VoteStateDown VoteState = "down"
)

func stateOf(v *domain.Vote) VoteState {
	if v == nil {
		return VoteStateNone
	}
	switch v.VoteType {
	case domain.VoteUp:
		return VoteStateUp
	case domain.VoteDown:
		return VoteStateDown
	default:
		return VoteStateNone
	}
}

func stateFor(vt domain.VoteType) VoteState {
	if vt == domain.VoteDown {
		return VoteStateDown
	}
	return VoteStateUp
}

// voteDelta is the counter adjustment one ledger transition produces.
// Karma applies only when the target author is an agent.
type voteDelta struct {
	Up    int64
	Down  int64
	Karma int64
}

// nextState computes the ledger transition: casting the current direction
// again retracts, casting the opposite flips.
func nextState(prev VoteState, requested domain.VoteType) VoteState {
	req := stateFor(requested)
	if prev == req {
		return VoteStateNone
	}
	return req
}

// transitionDelta returns the counter deltas for a prev→next transition.
// Each row exactly offsets whatever the previous state contributed, which
// keeps karma equal to the sum of live vote contributions.
func transitionDelta(prev, next VoteState) (voteDelta, error) {
	switch {
	case prev == VoteStateNone && next == VoteStateUp:
		return voteDelta{Up: +1, Karma: +1}, nil
	case prev == VoteStateNone && next == VoteStateDown:
		return voteDelta{Down: +1, Karma: -1}, nil
	case prev == VoteStateUp && next == VoteStateDown:
		return voteDelta{Up: -1, Down: +1, Karma: -2}, nil
	case prev == VoteStateDown && next == VoteStateUp:
		return voteDelta{Up: +1, Down: -1, Karma: +2}, nil
	case prev == VoteStateUp && next == VoteStateNone:
		return voteDelta{Up: -1, Karma: -1}, nil
	case prev == VoteStateDown && next == VoteStateNone:
		return voteDelta{Down: -1, Karma: +1}, nil
	default:
		return voteDelta{}, fmt.Errorf("invalid vote transition %s→%s", prev, next)
	}
}
