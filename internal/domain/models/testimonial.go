// internal/domain/models/testimonial.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial is a customer review with a 1-5 star rating.
type Testimonial struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Text     string             `bson:"text" json:"text"` // max 500 chars
	Stars    int                `bson:"rating" json:"stars"`
	ImageURL string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

const (
	MaxTestimonialTextLength = 500
	MinTestimonialStars      = 1
	MaxTestimonialStars      = 5
)
