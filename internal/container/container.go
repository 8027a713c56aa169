package container

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/auth"
	"github.com/saulo-duarte/streaker/internal/badge"
	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/goal"
	"github.com/saulo-duarte/streaker/internal/router"
	"github.com/saulo-duarte/streaker/internal/user"
	util "github.com/saulo-duarte/streaker/internal/utils"
)

type Container struct {
	Settings config.Settings
	DB       *gorm.DB

	UserContainer     *user.UserContainer
	ActivityContainer *activity.ActivityContainer
	GoalContainer     *goal.Container
	BadgeContainer    *badge.Container
}

// New initializes logging, auth and the database from settings, then wires
// every domain on top of the connection.
func New(ctx context.Context, settings config.Settings) (*Container, error) {
	if err := config.InitLogger(settings.Logging); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	auth.InitSecret(settings.Auth.JWTSecret)

	if err := config.Connect(ctx, settings.Database); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := Build(config.DB, time.Now)
	c.Settings = settings
	return c, nil
}

// Build wires the domain containers on db.
func Build(db *gorm.DB, clock util.Clock) *Container {
	userContainer := user.NewUserContainer(db)
	activityContainer := activity.NewActivityContainer(db, userContainer.Repo, clock)

	stats := &badgeStats{goals: goal.NewRepository(db), activities: activityContainer.Service}
	badgeContainer := badge.NewContainer(db, stats, clock)
	goalContainer := goal.NewContainer(db, badgeContainer.Service, clock)

	return &Container{
		DB:                db,
		UserContainer:     userContainer,
		ActivityContainer: activityContainer,
		GoalContainer:     goalContainer,
		BadgeContainer:    badgeContainer,
	}
}

func (c *Container) RouterConfig() router.RouterConfig {
	return router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		ActivityHandler: c.ActivityContainer.Handler,
		GoalHandler:     c.GoalContainer.Handler,
		BadgeHandler:    c.BadgeContainer.Handler,
		CORSOrigins:     c.Settings.Server.CORSOrigins,
		RequestTimeout:  c.Settings.Server.RequestTimeout,
		MetricsEnabled:  c.Settings.Metrics.Enabled,
	}
}
