// internal/domain/models/promotion.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promotion is a limited-time offer displayed on the landing page.
type Promotion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	Active      bool               `bson:"active" json:"active"`
	Order       int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MaxPromotions caps how many promotions may exist at once. The cap is
// enforced at the admin-action layer, not by the store.
const MaxPromotions = 3
