// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	settingsstore "github.com/dalemusser/glowsite/internal/app/store/settings"
	userstore "github.com/dalemusser/glowsite/internal/app/store/users"
	"github.com/dalemusser/glowsite/internal/app/system/authutil"
	"github.com/dalemusser/glowsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedSettings writes the compiled-in defaults into the settings collection
// on first start so the admin UI has something to edit.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingsstore.New(db)
	defaults := models.DefaultSnapshot()

	type seed struct {
		key  string
		save func(context.Context) error
	}
	seeds := []seed{
		{models.SettingsKeySite, func(ctx context.Context) error {
			return store.SaveSiteSettings(ctx, defaults.SiteSettings)
		}},
		{models.SettingsKeyOpeningHours, func(ctx context.Context) error {
			return store.SaveOpeningHours(ctx, defaults.OpeningHours)
		}},
		{models.SettingsKeyLegal, func(ctx context.Context) error {
			return store.SaveLegal(ctx, defaults.Legal)
		}},
	}

	for _, s := range seeds {
		exists, err := store.Exists(ctx, s.key)
		if err != nil {
			logger.Error("failed to check settings key",
				zap.String("key", s.key),
				zap.Error(err))
			return err
		}
		if !exists {
			if err := s.save(ctx); err != nil {
				logger.Error("failed to seed settings",
					zap.String("key", s.key),
					zap.Error(err))
				return err
			}
			logger.Info("seeded default settings", zap.String("key", s.key))
		}
	}

	return nil
}

// SeedAdmins creates accounts for allow-listed emails that don't have one
// yet. They get the initial password and must change it via the admin UI.
func SeedAdmins(ctx context.Context, db *mongo.Database, emails []string, initialPassword string, logger *zap.Logger) error {
	if initialPassword == "" {
		return nil
	}

	store := userstore.New(db)
	hash, err := authutil.HashPassword(initialPassword)
	if err != nil {
		return err
	}

	for _, email := range emails {
		exists, err := store.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := store.Create(ctx, email, hash); err != nil {
			logger.Error("failed to seed admin account",
				zap.String("email", email),
				zap.Error(err))
			return err
		}
		logger.Info("seeded admin account", zap.String("email", email))
	}

	return nil
}
