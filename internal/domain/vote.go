package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func ParseVoteType(s string) (VoteType, error) {
	switch VoteType(s) {
	case VoteUp:
		return VoteUp, nil
	case VoteDown:
		return VoteDown, nil
	default:
		return "", fmt.Errorf("unknown vote direction %q", s)
	}
}

// Vote is the ledger row: at most one per (actor, target), enforced by a
// composite unique index. Absence of a row means no vote cast.
type Vote struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ActorType ActorType `gorm:"not null;uniqueIndex:uniq_vote_actor_target,priority:1;column:actor_type" json:"actor_type"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_vote_actor_target,priority:2;column:actor_id" json:"actor_id"`

	TargetType TargetType `gorm:"not null;uniqueIndex:uniq_vote_actor_target,priority:3;index:idx_vote_target,priority:1;column:target_type" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_vote_actor_target,priority:4;index:idx_vote_target,priority:2;column:target_id" json:"target_id"`

	VoteType VoteType `gorm:"not null;column:vote_type" json:"vote_type"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Vote) TableName() string { return "vote" }

func (v *Vote) Actor() ActorRef {
	return ActorRef{Type: v.ActorType, ID: v.ActorID}
}

func (v *Vote) Target() TargetRef {
	return TargetRef{Type: v.TargetType, ID: v.TargetID}
}
