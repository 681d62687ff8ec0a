// Package ranking computes feed order keys from persisted post counters.
// Everything here is pure: the same signals and the same clock always
// produce the same order, so callers may recompute freely at read time.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Strategy string

const (
	StrategyNew           Strategy = "new"
	StrategyTop           Strategy = "top"
	StrategyHot           Strategy = "hot"
	StrategyControversial Strategy = "controversial"
	StrategyRising        Strategy = "rising"
)

const (
	// hotGravity is the decay exponent: a point of score loses weight as
	// (age+2)^1.5 grows. The +1/+2 offsets keep brand-new posts finite.
	hotGravity = 1.5

	// controversialFloor is the minimum total votes before a post can rank
	// as controversial at all.
	controversialFloor = 5

	// risingWindow bounds how old a post may be and still count as rising.
	risingWindow = 6 * time.Hour

	// risingCommentWeight values a comment at two upvotes of engagement.
	risingCommentWeight = 2
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNew, StrategyTop, StrategyHot, StrategyControversial, StrategyRising:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown ranking strategy %q", s)
	}
}

// Signals is the per-post input the storage layer supplies. The ranking
// engine never reads anything else.
type Signals struct {
	Upvotes      int64
	Downvotes    int64
	CommentCount int64
	CreatedAt    time.Time
}

// Item carries an opaque id through ranking so callers can map results
// back to their rows.
type Item struct {
	ID        uuid.UUID
	Signals   Signals
	Score     float64
	Malformed bool
}

// Score computes the order key for one post. A malformed record (zero or
// future createdAt) returns an error; callers score it 0 and keep going
// rather than aborting the collection.
func Score(s Signals, strategy Strategy, now time.Time) (float64, error) {
	if err := validate(s, now); err != nil {
		return 0, err
	}
	switch strategy {
	case StrategyNew:
		return float64(s.CreatedAt.UnixMilli()), nil
	case StrategyTop:
		return float64(s.Upvotes - s.Downvotes), nil
	case StrategyHot:
		return hotScore(s, now), nil
	case StrategyControversial:
		return controversialScore(s), nil
	case StrategyRising:
		return risingScore(s, now), nil
	default:
		return 0, fmt.Errorf("unknown ranking strategy %q", strategy)
	}
}

func validate(s Signals, now time.Time) error {
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("zero created_at")
	}
	// Tolerate small clock skew between writer and ranker.
	if s.CreatedAt.After(now.Add(5 * time.Minute)) {
		return fmt.Errorf("created_at in the future: %s", s.CreatedAt)
	}
	if s.Upvotes < 0 || s.Downvotes < 0 || s.CommentCount < 0 {
		return fmt.Errorf("negative counter")
	}
	return nil
}

func hoursSince(created time.Time, now time.Time) float64 {
	h := now.Sub(created).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func hotScore(s Signals, now time.Time) float64 {
	net := float64(s.Upvotes - s.Downvotes)
	age := hoursSince(s.CreatedAt, now)
	return (net + 1) / math.Pow(age+2, hotGravity)
}

func controversialScore(s Signals) float64 {
	total := s.Upvotes + s.Downvotes
	if total < controversialFloor {
		return 0
	}
	spread := s.Upvotes - s.Downvotes
	if spread < 0 {
		spread = -spread
	}
	// Volume weighted by how evenly split the vote is: a 50/50 split keeps
	// the full total, a landslide approaches zero.
	return float64(total) * (1 - float64(spread)/float64(total))
}

func risingScore(s Signals, now time.Time) float64 {
	if now.Sub(s.CreatedAt) > risingWindow {
		return 0
	}
	age := hoursSince(s.CreatedAt, now)
	return (float64(s.Upvotes) + float64(s.CommentCount)*risingCommentWeight) / (age + 1)
}

// Rank scores every item and sorts descending. Ties break by createdAt
// descending, then by id, so repeated calls with the same inputs yield the
// same order. The returned count is how many items were malformed and
// scored 0.
func Rank(items []Item, strategy Strategy, now time.Time) ([]Item, int) {
	malformed := 0
	for i := range items {
		score, err := Score(items[i].Signals, strategy, now)
		if err != nil {
			items[i].Score = 0
			items[i].Malformed = true
			malformed++
			continue
		}
		items[i].Score = score
		items[i].Malformed = false
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		ci, cj := items[i].Signals.CreatedAt, items[j].Signals.CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return items[i].ID.String() < items[j].ID.String()
	})
	return items, malformed
}
