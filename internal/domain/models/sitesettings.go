// internal/domain/models/sitesettings.go
package models

// SiteSettings holds the contact and booking information edited by admins
// and shown site-wide (header, footer, contact page).
type SiteSettings struct {
	BrandPrimary string `bson:"brand_primary" json:"brandPrimary"`
	BrandAccent  string `bson:"brand_accent" json:"brandAccent"`
	BookingURL   string `bson:"booking_url" json:"bookingUrl"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email" json:"email"`
	Address      string `bson:"address" json:"address"`
	Instagram    string `bson:"instagram" json:"instagram"`
	Facebook     string `bson:"facebook" json:"facebook"`
	LogoURL      string `bson:"logo_url" json:"logoUrl"`
}

// OpeningHour is one weekday entry of the opening-hours table.
// The snapshot always carries exactly seven, Monday first.
type OpeningHour struct {
	Day    string `bson:"day" json:"day"`
	Open   string `bson:"open" json:"open"`
	Close  string `bson:"close" json:"close"`
	Closed bool   `bson:"closed" json:"closed"`
}

// Legal holds the two long-form legal text blocks (sanitized HTML).
type Legal struct {
	Impressum   string `bson:"impressum" json:"impressum"`
	Datenschutz string `bson:"datenschutz" json:"datenschutz"`
}

// Settings document keys. Each key maps to one document in the settings
// collection; the aggregator reads all three, the admin settings feature
// upserts them individually.
const (
	SettingsKeySite         = "siteSettings"
	SettingsKeyOpeningHours = "openingHours"
	SettingsKeyLegal        = "legal"

	// SettingsKeyOverride stores a manually applied full-snapshot override
	// (legacy settings-only edit flow). Not part of the public key set.
	SettingsKeyOverride = "contentOverride"
)

// AllSettingsKeys returns the admin-editable settings keys.
func AllSettingsKeys() []string {
	return []string{SettingsKeySite, SettingsKeyOpeningHours, SettingsKeyLegal}
}

// IsValidSettingsKey checks if a key is admin-editable.
func IsValidSettingsKey(key string) bool {
	for _, k := range AllSettingsKeys() {
		if k == key {
			return true
		}
	}
	return false
}
