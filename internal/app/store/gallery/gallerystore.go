// internal/app/store/gallery/gallerystore.go
package gallery

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the gallery collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new gallery store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("gallery")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for adding a gallery image.
type CreateInput struct {
	URL      string
	Category string
	Order    int
}

// Create adds a new gallery image.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.GalleryImage, error) {
	now := time.Now().UTC()
	img := models.GalleryImage{
		ID:        primitive.NewObjectID(),
		URL:       input.URL,
		Category:  input.Category,
		Order:     input.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return nil, err
	}

	return &img, nil
}

// GetByID retrieves a gallery image by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.GalleryImage, error) {
	var img models.GalleryImage
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&img); err != nil {
		return nil, err
	}
	return &img, nil
}

// UpdateInput contains the input for updating a gallery image.
type UpdateInput struct {
	URL      *string
	Category *string
	Order    *int
}

// Update updates a gallery image.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.URL != nil {
		set["image_url"] = *input.URL
	}
	if input.Category != nil {
		set["description"] = *input.Category
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

// Delete deletes a gallery image.
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

// List returns all gallery images sorted by display order ascending.
func (s *Store) List(ctx context.Context) ([]models.GalleryImage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GalleryImage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
