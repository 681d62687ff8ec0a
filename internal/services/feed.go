package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/data/repos"
	"github.com/agoralabs/agora-backend/internal/domain"
	"github.com/agoralabs/agora-backend/internal/platform/apierr"
	"github.com/agoralabs/agora-backend/internal/platform/dbctx"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
	"github.com/agoralabs/agora-backend/internal/ranking"
)

const (
	feedDefaultLimit = 25
	feedMaxLimit     = 100

	// feedFetchPerCommunity caps how many candidate posts each community
	// contributes before ranking.
	feedFetchPerCommunity = 100

	// feedFanOut bounds concurrent per-community queries on the pool.
	feedFanOut = 8
)

type FeedItem struct {
	Post  *domain.Post `json:"post"`
	Score float64      `json:"score"`
}

type FeedService interface {
	// Home ranks recent posts across all communities.
	Home(ctx context.Context, strategy ranking.Strategy, limit int) ([]FeedItem, error)
	// Community ranks posts within a single community, addressed by slug.
	Community(ctx context.Context, slug string, strategy ranking.Strategy, limit int) ([]FeedItem, error)
}

type feedService struct {
	posts       repos.PostRepo
	communities repos.CommunityRepo
	log         *logger.Logger
}

func NewFeedService(posts repos.PostRepo, communities repos.CommunityRepo, baseLog *logger.Logger) FeedService {
	return &feedService{
		posts:       posts,
		communities: communities,
		log:         baseLog.With("service", "FeedService"),
	}
}

func clampFeedLimit(limit int) int {
	if limit <= 0 {
		return feedDefaultLimit
	}
	if limit > feedMaxLimit {
		return feedMaxLimit
	}
	return limit
}

func (s *feedService) Home(ctx context.Context, strategy ranking.Strategy, limit int) ([]FeedItem, error) {
	limit = clampFeedLimit(limit)

	communities, err := s.communities.List(dbctx.Context{Ctx: ctx}, 0)
	if err != nil {
		return nil, err
	}
	if len(communities) == 0 {
		return []FeedItem{}, nil
	}

	var (
		mu    sync.Mutex
		posts []*domain.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(feedFanOut)
	for _, c := range communities {
		g.Go(func() error {
			rows, err := s.posts.ListByCommunity(dbctx.Context{Ctx: gctx}, c.ID, feedFetchPerCommunity)
			if err != nil {
				return err
			}
			mu.Lock()
			posts = append(posts, rows...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.rank(posts, strategy, limit), nil
}

func (s *feedService) Community(ctx context.Context, slug string, strategy ranking.Strategy, limit int) ([]FeedItem, error) {
	limit = clampFeedLimit(limit)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("missing community slug"))
	}

	community, err := s.communities.GetBySlug(dbctx.Context{Ctx: ctx}, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierr.NotFound(fmt.Errorf("community %q not found", slug))
	}
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByCommunity(dbctx.Context{Ctx: ctx}, community.ID, feedFetchPerCommunity)
	if err != nil {
		return nil, err
	}
	return s.rank(posts, strategy, limit), nil
}

// rank is read-only over already-fetched rows. Malformed rows sort last
// with score 0 instead of failing the whole feed.
func (s *feedService) rank(posts []*domain.Post, strategy ranking.Strategy, limit int) []FeedItem {
	byID := make(map[string]*domain.Post, len(posts))
	items := make([]ranking.Item, 0, len(posts))
	for _, p := range posts {
		byID[p.ID.String()] = p
		items = append(items, ranking.Item{
			ID: p.ID,
			Signals: ranking.Signals{
				Upvotes:      p.Upvotes,
				Downvotes:    p.Downvotes,
				CommentCount: p.CommentCount,
				CreatedAt:    p.CreatedAt,
			},
		})
	}

	ranked, malformed := ranking.Rank(items, strategy, time.Now().UTC())
	if malformed > 0 {
		s.log.Warn("feed contained malformed rows", "count", malformed, "strategy", strategy)
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]FeedItem, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, FeedItem{Post: byID[it.ID.String()], Score: it.Score})
	}
	return out
}
