package services

import (
	"context"
	"encoding/json"
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
	"github.com/agoralabs/agora-backend/internal/platform/envutil"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type CreateCommentInput struct {
	PostID          uuid.UUID  `json:"post_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id,omitempty"`
	Body            string     `json:"body"`
}

type CommentService interface {
	// Create inserts the comment and bumps the post's comment_count in one
	// transaction under the post row lock. Replies to another comment also
	// record a notification for that comment's author.
	Create(ctx context.Context, author domain.ActorRef, input CreateCommentInput) (*domain.Comment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]*domain.Comment, error)
	Delete(ctx context.Context, actor domain.ActorRef, id uuid.UUID) error
}

type commentService struct {
	db            *gorm.DB
	comments      repos.CommentRepo
	notifications repos.NotificationRepo
	counters      *counterMaintainer
	notifier      Notifier
	lockWaitMS    int
	log           *logger.Logger
}

func NewCommentService(
	gdb *gorm.DB,
	posts repos.PostRepo,
	comments repos.CommentRepo,
	agents repos.AgentRepo,
	notifications repos.NotificationRepo,
	notifier Notifier,
	baseLog *logger.Logger,
) CommentService {
	log := baseLog.With("service", "CommentService")
	return &commentService{
		db:            gdb,
		comments:      comments,
		notifications: notifications,
		counters:      newCounterMaintainer(posts, comments, agents, baseLog),
		notifier:      notifier,
		lockWaitMS:    envutil.GetEnvAsInt("VOTE_LOCK_TIMEOUT_MS", 3000, log),
		log:           log,
	}
}

func (s *commentService) Create(ctx context.Context, author domain.ActorRef, input CreateCommentInput) (*domain.Comment, error) {
	if err := author.Validate(); err != nil {
		return nil, apierr.InvalidArgument(err)
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing body"))
	}
	if input.PostID == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing post_id"))
	}

	var (
		out   *domain.Comment
		reply *domain.Notification
	)

	run := func(dbc dbctx.Context) error {
		if err := dbc.Tx.WithContext(dbc.Ctx).
			Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockWaitMS)).Error; err != nil {
			return err
		}

		var parent *domain.Comment
		if input.ParentCommentID != nil {
			parents, err := s.comments.GetByIDs(dbc, []uuid.UUID{*input.ParentCommentID})
			if err != nil {
				return err
			}
			if len(parents) == 0 {
				return apierr.NotFound(fmt.Errorf("parent comment %s not found", *input.ParentCommentID))
			}
			parent = parents[0]
			if parent.PostID != input.PostID {
				return apierr.InvalidArgument(fmt.Errorf("parent comment belongs to another post"))
			}
		}

		rows, err := s.comments.Create(dbc, []*domain.Comment{{
			PostID:          input.PostID,
			ParentCommentID: input.ParentCommentID,
			AuthorType:      author.Type,
			AuthorID:        author.ID,
			Body:            body,
		}})
		if err != nil {
			return err
		}
		out = rows[0]

		// bumpCommentCount locks the post row and surfaces NotFound when the
		// post is gone.
		if _, err := s.counters.bumpCommentCount(dbc, input.PostID, +1); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound(fmt.Errorf("post %s not found", input.PostID))
			}
			return err
		}

		if parent != nil && !parent.Author().Equal(author) {
			data, _ := json.Marshal(map[string]any{"comment_id": out.ID})
			reply = &domain.Notification{
				RecipientType: parent.AuthorType,
				RecipientID:   parent.AuthorID,
				Type:          domain.NotificationReply,
				ActorType:     author.Type,
				ActorID:       author.ID,
				TargetType:    domain.TargetComment,
				TargetID:      parent.ID,
				Data:          data,
			}
			if err := s.notifications.Create(dbc, reply); err != nil {
				return err
			}
		}
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return run(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err != nil {
		if ae := apierr.From(err); ae != nil {
			return nil, ae
		}
		if db.IsLockContention(err) {
			return nil, apierr.Conflict(fmt.Errorf("comment on post %s lost a lock race: %w", input.PostID, err))
		}
		return nil, err
	}

	if reply != nil {
		s.notifier.NotificationCreated(ctx, reply)
	}
	return out, nil
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if id == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing comment id"))
	}
	rows, err := s.comments.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("comment %s not found", id))
	}
	return rows[0], nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, limit int) ([]*domain.Comment, error) {
	if postID == uuid.Nil {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing post_id"))
	}
	return s.comments.ListByPost(dbctx.Context{Ctx: ctx}, postID, limit)
}

func (s *commentService) Delete(ctx context.Context, actor domain.ActorRef, id uuid.UUID) error {
	if err := actor.Validate(); err != nil {
		return apierr.InvalidArgument(err)
	}

	run := func(dbc dbctx.Context) error {
		if err := dbc.Tx.WithContext(dbc.Ctx).
			Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockWaitMS)).Error; err != nil {
			return err
		}
		rows, err := s.comments.GetByIDs(dbc, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return apierr.NotFound(fmt.Errorf("comment %s not found", id))
		}
		c := rows[0]
		if !c.Author().Equal(actor) {
			return apierr.Forbidden(fmt.Errorf("%s is not the author of comment %s", actor, id))
		}
		if err := s.comments.SoftDeleteByID(dbc, id); err != nil {
			return err
		}
		_, err = s.counters.bumpCommentCount(dbc, c.PostID, -1)
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return run(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err != nil {
		if ae := apierr.From(err); ae != nil {
			return ae
		}
		if db.IsLockContention(err) {
			return apierr.Conflict(fmt.Errorf("delete of comment %s lost a lock race: %w", id, err))
		}
		return err
	}
	return nil
}
