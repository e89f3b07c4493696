// internal/app/store/promotions/promotionstore.go
package promotions

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the promotions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new promotion store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("promotions")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "active", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for creating a promotion.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
	Active      bool
	Order       int
}

// Create creates a new promotion. The caller enforces the promotion cap
// before calling.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Promotion, error) {
	now := time.Now().UTC()
	p := models.Promotion{
		ID:          primitive.NewObjectID(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Active:      input.Active,
		Order:       input.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return nil, err
	}

	return &p, nil
}

// GetByID retrieves a promotion by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	var p models.Promotion
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateInput contains the input for updating a promotion.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Active      *bool
	Order       *int
}

// Update updates a promotion.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
	}
	if input.Active != nil {
		set["active"] = *input.Active
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a promotion.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns all promotions sorted by display order ascending.
func (s *Store) List(ctx context.Context) ([]models.Promotion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Promotion
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of promotions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
