// internal/domain/models/gallery.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryImage is a purely presentational record: an image URL plus a
// free-text category used for filtering in the public gallery.
type GalleryImage struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	URL      string             `bson:"image_url" json:"url"`
	Category string             `bson:"description" json:"category"`
	Order    int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
