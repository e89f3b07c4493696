// internal/domain/models/image.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image folders. Uploads are namespaced by folder so per-folder caps and
// quota accounting stay cheap to compute.
const (
	FolderGallery      = "gallery"
	FolderServices     = "services"
	FolderTestimonials = "testimonials"
	FolderPromotions   = "promotions"
	FolderGeneral      = "general"
)

// AllImageFolders returns the folders uploads may target.
func AllImageFolders() []string {
	return []string{
		FolderGallery,
		FolderServices,
		FolderTestimonials,
		FolderPromotions,
		FolderGeneral,
	}
}

// IsValidImageFolder reports whether folder is one of the known folders.
func IsValidImageFolder(folder string) bool {
	for _, f := range AllImageFolders() {
		if f == folder {
			return true
		}
	}
	return false
}

// StoredImage is the metadata row kept for every uploaded file. Quota and
// folder counts are computed from these rows rather than by listing the
// storage backend.
type StoredImage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Folder      string             `bson:"folder" json:"folder"`
	Key         string             `bson:"key" json:"key"`
	URL         string             `bson:"url" json:"url"`
	Size        int64              `bson:"size" json:"size"`
	ContentType string             `bson:"content_type" json:"contentType"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}
