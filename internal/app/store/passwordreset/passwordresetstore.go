// internal/app/store/passwordreset/passwordresetstore.go

// Package passwordreset stores single-use reset tokens for admin accounts.
// Tokens expire after the configured window and a fresh request invalidates
// every earlier token for the same account.
package passwordreset

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrTokenInvalid is returned for unknown, used, or expired tokens. Callers
// show one uniform message for all three.
var ErrTokenInvalid = errors.New("invalid or expired token")

// tokenBytes of randomness per token, base64url-encoded for the email link.
const tokenBytes = 32

// Reset is one issued reset token.
type Reset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Email     string             `bson:"email"`
	Token     string             `bson:"token"`
	Used      bool               `bson:"used"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Store provides access to the password_resets collection.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a password reset store issuing tokens valid for expiry.
func New(db *mongo.Database, expiry time.Duration) *Store {
	return &Store{c: db.Collection("password_resets"), expiry: expiry}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	return err
}

// Create issues a fresh token for the account and burns all earlier unused
// ones, so only the newest emailed link works.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (*Reset, error) {
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"user_id": userID, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	); err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r := Reset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Token:     token,
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// VerifyToken returns the reset record for a live token, or ErrTokenInvalid.
func (s *Store) VerifyToken(ctx context.Context, token string) (*Reset, error) {
	var r Reset
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MarkUsed burns a token after a successful password change.
func (s *Store) MarkUsed(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"used": true}})
	return err
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
