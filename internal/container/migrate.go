package container

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/badge"
	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/goal"
	"github.com/saulo-duarte/streaker/internal/user"
)

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&activity.Activity{},
		&goal.Template{},
		&goal.Goal{},
		&goal.ProgressLog{},
		&badge.Badge{},
		&badge.UserBadge{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	config.Logger.Info("Database migrated")
	return nil
}

// Seed upserts the goal template and badge catalogs. Running it again
// refreshes the rows in place.
func Seed(ctx context.Context, db *gorm.DB) error {
	templates := goal.DefaultTemplates()
	if err := goal.NewRepository(db).UpsertTemplates(ctx, templates); err != nil {
		return err
	}
	badges := badge.DefaultCatalog()
	if err := badge.NewRepository(db).UpsertCatalog(ctx, badges); err != nil {
		return err
	}

	config.Logger.WithField("templates", len(templates)).WithField("badges", len(badges)).Info("Catalogs seeded")
	return nil
}
