// internal/domain/models/service.go
package models

import "time"

// Service represents a bookable treatment shown on the public site.
//
// The slug doubles as the document _id: it is human-editable, appears as the
// URL path segment for the service detail page, and is the soft foreign key
// that price categories reference. Once created the slug is immutable -
// "renaming" a service means creating a new document under the new slug.
type Service struct {
	Slug        string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Excerpt     string `bson:"excerpt" json:"excerpt"`         // short teaser, max 200 chars
	Description string `bson:"description" json:"description"` // long form, sanitized HTML/markdown
	ImageURL    string `bson:"image_url" json:"imageUrl"`
	Order       int    `bson:"order" json:"order"`

	// Optional SEO sub-section rendered below the fold on the detail page.
	SEOSectionTitle    string `bson:"seo_section_title,omitempty" json:"seoSectionTitle,omitempty"`
	SEOSectionContent  string `bson:"seo_section_content,omitempty" json:"seoSectionContent,omitempty"`
	SEOSectionImageURL string `bson:"seo_section_image_url,omitempty" json:"seoSectionImageUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Field limits enforced by the admin services feature before any store call.
const (
	MaxServiceTitleLength   = 100
	MaxServiceExcerptLength = 200
	MinServiceDescription   = 50
)
