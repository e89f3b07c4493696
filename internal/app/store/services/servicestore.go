// internal/app/store/services/servicestore.go
package services

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the services collection. Services are keyed by
// their slug, which doubles as the document _id.
type Store struct {
	c *mongo.Collection
}

// New creates a new service store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
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

// CreateInput contains the input for creating a service.
type CreateInput struct {
	Slug               string
	Title              string
	Excerpt            string
	Description        string
	ImageURL           string
	Order              int
	SEOSectionTitle    string
	SEOSectionContent  string
	SEOSectionImageURL string
}

// Create creates a new service. The slug must already be validated and
// unique; a duplicate slug surfaces as a duplicate key error from the driver.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.Service, error) {
	now := time.Now().UTC()
	svc := models.Service{
		Slug:               input.Slug,
		Title:              input.Title,
		Excerpt:            input.Excerpt,
		Description:        input.Description,
		ImageURL:           input.ImageURL,
		Order:              input.Order,
		SEOSectionTitle:    input.SEOSectionTitle,
		SEOSectionContent:  input.SEOSectionContent,
		SEOSectionImageURL: input.SEOSectionImageURL,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		return nil, err
	}

	return &svc, nil
}

// GetBySlug returns a service by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var svc models.Service
	if err := s.c.FindOne(ctx, bson.M{"_id": slug}).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

// UpdateInput contains the input for updating a service. Nil fields are
// left unchanged.
type UpdateInput struct {
	Title              *string
	Excerpt            *string
	Description        *string
	ImageURL           *string
	Order              *int
	SEOSectionTitle    *string
	SEOSectionContent  *string
	SEOSectionImageURL *string
}

// Update updates a service by slug.
func (s *Store) Update(ctx context.Context, slug string, input UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Excerpt != nil {
		set["excerpt"] = *input.Excerpt
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if input.SEOSectionTitle != nil {
		set["seo_section_title"] = *input.SEOSectionTitle
	}
	if input.SEOSectionContent != nil {
		set["seo_section_content"] = *input.SEOSectionContent
	}
	if input.SEOSectionImageURL != nil {
		set["seo_section_image_url"] = *input.SEOSectionImageURL
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": slug}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a service by slug. Dependent price categories are removed
// by the caller so the two collections stay consistent.
func (s *Store) Delete(ctx context.Context, slug string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns all services sorted by display order ascending.
func (s *Store) List(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists checks if a service with the given slug exists.
func (s *Store) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
