package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/db"
	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type CreateAgentInput struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

type CreateHumanInput struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

type AccountService interface {
	CreateAgent(ctx context.Context, input CreateAgentInput) (*domain.Agent, error)
	CreateHuman(ctx context.Context, input CreateHumanInput) (*domain.Human, error)
	GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	GetAgentByHandle(ctx context.Context, handle string) (*domain.Agent, error)
	GetHumanByHandle(ctx context.Context, handle string) (*domain.Human, error)
	// ActorExists verifies the referenced account row is present.
	ActorExists(ctx context.Context, actor domain.ActorRef) (bool, error)
}

type accountService struct {
	agents repos.AgentRepo
	humans repos.HumanRepo
	log    *logger.Logger
}

func NewAccountService(agents repos.AgentRepo, humans repos.HumanRepo, baseLog *logger.Logger) AccountService {
	return &accountService{
		agents: agents,
		humans: humans,
		log:    baseLog.With("service", "AccountService"),
	}
}

func normalizeHandle(h string) (string, error) {
	h = strings.ToLower(strings.TrimSpace(h))
	if h == "" {
		return "", fmt.Errorf("missing handle")
	}
	if len(h) > 64 {
		return "", fmt.Errorf("handle too long")
	}
	return h, nil
}

func (s *accountService) CreateAgent(ctx context.Context, input CreateAgentInput) (*domain.Agent, error) {
	handle, err := normalizeHandle(input.Handle)
	if err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = handle
	}

	rows, err := s.agents.Create(dbctx.Context{Ctx: ctx}, []*domain.Agent{{
		Handle:      handle,
		DisplayName: name,
		Bio:         strings.TrimSpace(input.Bio),
	}})
	if db.IsUniqueViolation(err) {
		return nil, apierr.Conflict(fmt.Errorf("handle %q taken: %w", handle, err))
	}
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *accountService) CreateHuman(ctx context.Context, input CreateHumanInput) (*domain.Human, error) {
	handle, err := normalizeHandle(input.Handle)
	if err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = handle
	}

	rows, err := s.humans.Create(dbctx.Context{Ctx: ctx}, []*domain.Human{{
		Handle:      handle,
		DisplayName: name,
	}})
	if db.IsUniqueViolation(err) {
		return nil, apierr.Conflict(fmt.Errorf("handle %q taken: %w", handle, err))
	}
	if err != nil {
		return nil, err
	}
	return rows[0], nil
}

func (s *accountService) GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	if id == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing agent id"))
	}
	rows, err := s.agents.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("agent %s not found", id))
	}
	return rows[0], nil
}

func (s *accountService) GetAgentByHandle(ctx context.Context, handle string) (*domain.Agent, error) {
	out, err := s.agents.GetByHandle(dbctx.Context{Ctx: ctx}, strings.ToLower(strings.TrimSpace(handle)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound(fmt.Errorf("agent %q not found", handle))
	}
	return out, err
}

func (s *accountService) GetHumanByHandle(ctx context.Context, handle string) (*domain.Human, error) {
	out, err := s.humans.GetByHandle(dbctx.Context{Ctx: ctx}, strings.ToLower(strings.TrimSpace(handle)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound(fmt.Errorf("human %q not found", handle))
	}
	return out, err
}

func (s *accountService) ActorExists(ctx context.Context, actor domain.ActorRef) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, apierr.InvalidArgument(err)
	}
	dbc := dbctx.Context{Ctx: ctx}
	switch actor.Type {
	case domain.ActorAgent:
		rows, err := s.agents.GetByIDs(dbc, []uuid.UUID{actor.ID})
		return len(rows) > 0, err
	case domain.ActorHuman:
		rows, err := s.humans.GetByIDs(dbc, []uuid.UUID{actor.ID})
		return len(rows) > 0, err
	}
	return false, nil
}
