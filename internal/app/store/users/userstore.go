// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the users collection. Only allow-listed admin
// accounts live here.
type Store struct {
	c *mongo.Collection
}

// New creates a new user store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID retrieves an admin account by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves an admin account by email (case-insensitive).
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	if err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new admin account with the given bcrypt hash.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (*models.AdminUser, error) {
	now := time.Now().UTC()
	u := models.AdminUser{
		ID:           primitive.NewObjectID(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdatePassword replaces the stored password hash for an account.
func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordLogin stamps the last successful sign-in time.
func (s *Store) RecordLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}},
	)
	return err
}

// ExistsByEmail checks whether an account exists for email.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"email": normalizeEmail(email)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll returns all admin accounts.
func (s *Store) ListAll(ctx context.Context) ([]models.AdminUser, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AdminUser
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
