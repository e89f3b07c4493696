// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the settings collection. Each document holds one
// keyed value (site settings, opening hours, legal texts, content override),
// with the key as the document _id.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("settings")}
}

type doc struct {
	Key       string    `bson:"_id"`
	Value     bson.Raw  `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	var d doc
	if err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&d); err != nil {
		return err
	}
	return bson.Unmarshal(d.Value, out)
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	raw, err := bson.Marshal(value)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"value":      bson.Raw(raw),
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{"_id": key},
	}

	opts := options.Update().SetUpsert(true)
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": key}, update, opts)
	return err
}

// Exists checks whether a value has been saved under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": key})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSiteSettings returns the stored site settings.
func (s *Store) GetSiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var out models.SiteSettings
	if err := s.get(ctx, models.SettingsKeySite, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSiteSettings stores the site settings.
func (s *Store) SaveSiteSettings(ctx context.Context, settings models.SiteSettings) error {
	return s.save(ctx, models.SettingsKeySite, settings)
}

// openingHoursDoc wraps the slice so the stored value stays a bson document.
type openingHoursDoc struct {
	Hours []models.OpeningHour `bson:"hours"`
}

// GetOpeningHours returns the stored weekly opening hours.
func (s *Store) GetOpeningHours(ctx context.Context) ([]models.OpeningHour, error) {
	var out openingHoursDoc
	if err := s.get(ctx, models.SettingsKeyOpeningHours, &out); err != nil {
		return nil, err
	}
	return out.Hours, nil
}

// SaveOpeningHours stores the weekly opening hours.
func (s *Store) SaveOpeningHours(ctx context.Context, hours []models.OpeningHour) error {
	return s.save(ctx, models.SettingsKeyOpeningHours, openingHoursDoc{Hours: hours})
}

// GetLegal returns the stored legal texts.
func (s *Store) GetLegal(ctx context.Context) (*models.Legal, error) {
	var out models.Legal
	if err := s.get(ctx, models.SettingsKeyLegal, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveLegal stores the legal texts.
func (s *Store) SaveLegal(ctx context.Context, legal models.Legal) error {
	return s.save(ctx, models.SettingsKeyLegal, legal)
}

type overrideDoc struct {
	Enabled bool `bson:"enabled"`
}

// GetContentOverride reports whether dynamic content is forced on. A missing
// document means no override.
func (s *Store) GetContentOverride(ctx context.Context) (bool, error) {
	var out overrideDoc
	err := s.get(ctx, models.SettingsKeyOverride, &out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.Enabled, nil
}

// SetContentOverride stores the dynamic-content override flag.
func (s *Store) SetContentOverride(ctx context.Context, enabled bool) error {
	return s.save(ctx, models.SettingsKeyOverride, overrideDoc{Enabled: enabled})
}
