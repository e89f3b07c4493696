// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/app/system/certcheck"
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ContentRefreshJob creates the job that keeps the public content snapshot
// in sync with the database.
func ContentRefreshJob(agg *content.Aggregator, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "content-refresh",
		Interval: interval,
		Run: func(ctx context.Context) error {
			if err := agg.Refresh(ctx); err != nil {
				return err
			}
			state, last := agg.State()
			logger.Debug("content snapshot refreshed",
				zap.String("state", state),
				zap.Time("last_sync", last))
			return nil
		},
	}
}

// PasswordResetCleanupJob creates a job that removes expired password reset tokens.
func PasswordResetCleanupJob(db *mongo.Database, logger *zap.Logger) Job {
	return Job{
		Name:     "password-reset-cleanup",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("password_resets")
			result, err := coll.DeleteMany(ctx, bson.M{
				"expires_at": bson.M{"$lt": time.Now()},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("cleaned up expired password reset tokens",
					zap.Int64("deleted", result.DeletedCount))
			}
			return nil
		},
	}
}

// CertExpiryJob creates a job that checks the site's TLS certificate and
// warns when it is close to expiry. Localhost and plain-http base URLs
// report valid without dialing.
func CertExpiryJob(baseURL string, logger *zap.Logger) Job {
	return Job{
		Name:     "cert-expiry-check",
		Interval: 24 * time.Hour,
		Run: func(ctx context.Context) error {
			info := certcheck.Check(baseURL)
			if !info.IsValid {
				logger.Warn("TLS certificate check failed",
					zap.String("host", info.Host),
					zap.String("error", info.Error))
				return nil
			}
			if !info.ExpiresAt.IsZero() && info.DaysLeft < 21 {
				logger.Warn("TLS certificate expires soon",
					zap.String("host", info.Host),
					zap.Int("days_left", info.DaysLeft),
					zap.Time("expires_at", info.ExpiresAt))
			}
			return nil
		},
	}
}

// RateLimitCleanupJob creates a job that removes stale sign-in attempt
// records. The TTL index does this too; the job keeps dev databases without
// TTL support tidy.
func RateLimitCleanupJob(db *mongo.Database, logger *zap.Logger) Job {
	return Job{
		Name:     "rate-limit-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			coll := db.Collection("rate_limits")
			cutoff := time.Now().Add(-24 * time.Hour)
			result, err := coll.DeleteMany(ctx, bson.M{
				"updated_at": bson.M{"$lt": cutoff},
			})
			if err != nil {
				return err
			}
			if result.DeletedCount > 0 {
				logger.Info("cleaned up stale rate limit records",
					zap.Int64("deleted", result.DeletedCount))
			}
			return nil
		},
	}
}
