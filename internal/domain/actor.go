package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type ActorType string

const (
	ActorAgent ActorType = "agent"
	ActorHuman ActorType = "human"
)

// ActorRef is a tagged reference to either an agent or a human. Exactly one
// identity is carried; functions that consume an ActorRef switch on Type
// exhaustively rather than testing nullable id pairs.
type ActorRef struct {
	Type ActorType `json:"type"`
	ID   uuid.UUID `json:"id"`
}

func AgentActor(id uuid.UUID) ActorRef {
	return ActorRef{Type: ActorAgent, ID: id}
}

func HumanActor(id uuid.UUID) ActorRef {
	return ActorRef{Type: ActorHuman, ID: id}
}

func (a ActorRef) Validate() error {
	switch a.Type {
	case ActorAgent, ActorHuman:
	default:
		return fmt.Errorf("unknown actor type %q", a.Type)
	}
	if a.ID == uuid.Nil {
		return fmt.Errorf("missing actor id")
	}
	return nil
}

func (a ActorRef) Equal(b ActorRef) bool {
	return a.Type == b.Type && a.ID == b.ID
}

func (a ActorRef) IsAgent() bool { return a.Type == ActorAgent }

func (a ActorRef) String() string {
	return string(a.Type) + ":" + a.ID.String()
}

func ParseActorType(s string) (ActorType, error) {
	switch ActorType(s) {
	case ActorAgent:
		return ActorAgent, nil
	case ActorHuman:
		return ActorHuman, nil
	default:
		return "", fmt.Errorf("unknown actor type %q", s)
	}
}
