// internal/domain/models/price.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceItem is a single line inside a price category.
type PriceItem struct {
	Name        string  `bson:"name" json:"name"`
	Amount      float64 `bson:"amount" json:"amount"`     // price in euro
	Duration    int     `bson:"duration" json:"duration"` // minutes
	Badge       string  `bson:"badge,omitempty" json:"badge,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// PriceCategory groups price items under a service.
//
// ServiceID references Service.Slug but is deliberately not enforced by a
// constraint: deleting a service may leave orphaned categories behind, which
// the admin cleans up (or the services feature removes explicitly).
type PriceCategory struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ServiceID     string             `bson:"service_id" json:"serviceId"`
	Category      string             `bson:"category" json:"category"`
	DurationRange string             `bson:"duration_range,omitempty" json:"durationRange,omitempty"`
	StartingPrice *float64           `bson:"starting_price,omitempty" json:"startingPrice,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Items         []PriceItem        `bson:"items" json:"items"`
	Order         int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
