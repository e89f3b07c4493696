// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Default rate limit settings for admin sign-in.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// Record tracks the failed sign-in attempts for one email as a rolling log
// of timestamps. Only attempts inside the window count; older entries are
// pruned on write.
type Record struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"` // normalized lowercase
	Attempts []time.Time        `bson:"attempts"`
	Updated  time.Time          `bson:"updated_at"`
}

// Store manages rate limit tracking for sign-in attempts.
type Store struct {
	c           *mongo.Collection
	maxAttempts int
	window      time.Duration
	logger      *zap.Logger
}

// New creates a new rate limit Store with the given configuration.
func New(db *mongo.Database, maxAttempts int, window time.Duration, logger *zap.Logger) *Store {
	return &Store{
		c:           db.Collection("rate_limits"),
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ratelimit_email"),
		},
		// Old records are garbage, clean them up after 24 hours.
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_ratelimit_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// countRecent counts attempts strictly inside the window ending at now.
func (s *Store) countRecent(attempts []time.Time, now time.Time) (count int, oldest time.Time) {
	cutoff := now.Add(-s.window)
	for _, at := range attempts {
		if at.After(cutoff) {
			if count == 0 || at.Before(oldest) {
				oldest = at
			}
			count++
		}
	}
	return count, oldest
}

// CheckAllowed checks if the given email may attempt to sign in.
// Returns:
//   - allowed: true if the attempt should be processed
//   - remainingMinutes: minutes until the oldest counted attempt leaves the
//     window (0 when allowed)
func (s *Store) CheckAllowed(ctx context.Context, email string) (allowed bool, remainingMinutes int) {
	email = normalizeEmail(email)
	now := time.Now()

	var rec Record
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return true, 0
	}
	if err != nil {
		// On error, allow the attempt (fail open for availability)
		s.logger.Warn("rate limit lookup failed, allowing attempt",
			zap.String("email", email),
			zap.Error(err))
		return true, 0
	}

	count, oldest := s.countRecent(rec.Attempts, now)
	if count < s.maxAttempts {
		return true, 0
	}

	// Blocked until the oldest counted attempt ages out, rounded up to
	// whole minutes.
	wait := s.window - now.Sub(oldest)
	mins := int((wait + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return false, mins
}

// RecordFailure appends a failed attempt for the given email, pruning
// entries that have left the window.
func (s *Store) RecordFailure(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	now := time.Now()

	var rec Record
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		rec = Record{
			ID:       primitive.NewObjectID(),
			Email:    email,
			Attempts: []time.Time{now},
			Updated:  now,
		}
		_, err := s.c.InsertOne(ctx, rec)
		return err
	}
	if err != nil {
		return err
	}

	cutoff := now.Add(-s.window)
	kept := make([]time.Time, 0, len(rec.Attempts)+1)
	for _, at := range rec.Attempts {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	kept = append(kept, now)

	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": rec.ID},
		bson.M{"$set": bson.M{
			"attempts":   kept,
			"updated_at": now,
		}},
	)
	return err
}

// Remaining returns how many sign-in attempts are left for the given email
// before it is locked out. Lookup errors count as a fresh record.
func (s *Store) Remaining(ctx context.Context, email string) int {
	email = normalizeEmail(email)

	var rec Record
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return s.maxAttempts
	}
	if err != nil {
		s.logger.Warn("rate limit lookup failed",
			zap.String("email", email),
			zap.Error(err))
		return s.maxAttempts
	}

	count, _ := s.countRecent(rec.Attempts, time.Now())
	if count >= s.maxAttempts {
		return 0
	}
	return s.maxAttempts - count
}

// ClearOnSuccess removes the rate limit record for the given email.
// Called after a successful sign-in to reset the counter.
func (s *Store) ClearOnSuccess(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	_, err := s.c.DeleteOne(ctx, bson.M{"email": email})
	return err
}

// GetRecord returns the current record for an email (for debugging/admin).
func (s *Store) GetRecord(ctx context.Context, email string) (*Record, error) {
	email = normalizeEmail(email)
	var rec Record
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
