// internal/app/store/testimonials/testimonialstore.go
package testimonials

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the testimonials collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new testimonial store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("testimonials")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for creating a testimonial.
type CreateInput struct {
	Name     string
	Text     string
	Stars    int
	ImageURL string
}

// Create creates a new testimonial.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Testimonial, error) {
	now := time.Now().UTC()
	t := models.Testimonial{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Text:      input.Text,
		Stars:     input.Stars,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetByID retrieves a testimonial by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	var t models.Testimonial
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateInput contains the input for updating a testimonial.
type UpdateInput struct {
	Name     *string
	Text     *string
	Stars    *int
	ImageURL *string
}

// Update updates a testimonial.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Text != nil {
		set["text"] = *input.Text
	}
	if input.Stars != nil {
		set["rating"] = *input.Stars
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
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

// Delete deletes a testimonial.
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

// List returns all testimonials, newest first.
func (s *Store) List(ctx context.Context) ([]models.Testimonial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
