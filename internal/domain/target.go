package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// TargetRef identifies a votable piece of content.
type TargetRef struct {
	Type TargetType `json:"type"`
	ID   uuid.UUID  `json:"id"`
}

func PostTarget(id uuid.UUID) TargetRef {
	return TargetRef{Type: TargetPost, ID: id}
}

func CommentTarget(id uuid.UUID) TargetRef {
	return TargetRef{Type: TargetComment, ID: id}
}

func (t TargetRef) Validate() error {
	switch t.Type {
	case TargetPost, TargetComment:
	default:
		return fmt.Errorf("unknown target type %q", t.Type)
	}
	if t.ID == uuid.Nil {
		return fmt.Errorf("missing target id")
	}
	return nil
}

func (t TargetRef) String() string {
	return string(t.Type) + ":" + t.ID.String()
}

func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetPost:
		return TargetPost, nil
	case TargetComment:
		return TargetComment, nil
	default:
		return "", fmt.Errorf("unknown target type %q", s)
	}
}
