// internal/app/store/prices/pricestore.go
package prices

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the price_categories collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new price store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("price_categories")}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CreateInput contains the input for creating a price category.
type CreateInput struct {
	ServiceID     string
	Category      string
	DurationRange string
	StartingPrice *float64
	Description   string
	Items         []models.PriceItem
	Order         int
}

// Create creates a new price category.
func (s *Store) Create(ctx context.Context, input CreateInput) (*models.PriceCategory, error) {
	now := time.Now().UTC()
	cat := models.PriceCategory{
		ID:            primitive.NewObjectID(),
		ServiceID:     input.ServiceID,
		Category:      input.Category,
		DurationRange: input.DurationRange,
		StartingPrice: input.StartingPrice,
		Description:   input.Description,
		Items:         input.Items,
		Order:         input.Order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if cat.Items == nil {
		cat.Items = []models.PriceItem{}
	}

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		return nil, err
	}

	return &cat, nil
}

// GetByID retrieves a price category by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PriceCategory, error) {
	var cat models.PriceCategory
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateInput contains the input for updating a price category. Nil fields
// are left unchanged; Items replaces the whole item list when set.
type UpdateInput struct {
	ServiceID     *string
	Category      *string
	DurationRange *string
	StartingPrice *float64
	Description   *string
	Items         []models.PriceItem
	Order         *int
}

// Update updates a price category.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, input UpdateInput) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if input.ServiceID != nil {
		set["service_id"] = *input.ServiceID
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.DurationRange != nil {
		set["duration_range"] = *input.DurationRange
	}
	if input.StartingPrice != nil {
		set["starting_price"] = *input.StartingPrice
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Items != nil {
		set["items"] = input.Items
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

// Delete deletes a price category.
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

// DeleteByService removes all price categories tied to a service. Returns
// the number of categories removed.
func (s *Store) DeleteByService(ctx context.Context, serviceID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"service_id": serviceID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all price categories sorted by display order ascending.
func (s *Store) List(ctx context.Context) ([]models.PriceCategory, error) {
	return s.find(ctx, bson.M{})
}

// ListByService returns the price categories for one service, sorted by
// display order ascending.
func (s *Store) ListByService(ctx context.Context, serviceID string) ([]models.PriceCategory, error) {
	return s.find(ctx, bson.M{"service_id": serviceID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.PriceCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PriceCategory
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
