package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/agoralabs/agora-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// Identity
		&domain.Agent{},
		&domain.Human{},

		// Content
		&domain.Community{},
		&domain.Post{},
		&domain.Comment{},

		// Engine
		&domain.Vote{},
		&domain.Notification{},
	); err != nil {
		return err
	}

	constraints := []string{
		// Milestone exactly-once key: one notification per (post, threshold).
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_notification_milestone
		 ON "notification" ("target_id", "threshold")
		 WHERE "type" = 'milestone'`,

		`CREATE INDEX IF NOT EXISTS idx_post_community_created
		 ON "post" ("community_id", "created_at" DESC)`,

		// Counters never go negative in correct operation; the check makes a
		// violation fail loudly instead of persisting.
		`ALTER TABLE "post" DROP CONSTRAINT IF EXISTS chk_post_counters_nonneg`,
		`ALTER TABLE "post" ADD CONSTRAINT chk_post_counters_nonneg
		 CHECK ("upvotes" >= 0 AND "downvotes" >= 0 AND "comment_count" >= 0)`,
		`ALTER TABLE "comment" DROP CONSTRAINT IF EXISTS chk_comment_counters_nonneg`,
		`ALTER TABLE "comment" ADD CONSTRAINT chk_comment_counters_nonneg
		 CHECK ("upvotes" >= 0 AND "downvotes" >= 0)`,
	}
	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
