// Package cli implements the streaker command-line interface using Cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/streaker/internal/config"
	"github.com/saulo-duarte/streaker/internal/container"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "streaker",
	Short:         "Streaker tracks daily activities, streaks, goals and badges",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default $STREAKER_CONFIG)")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadSettings() (config.Settings, error) {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return settings, err
	}
	return settings, settings.Validate()
}

// newContainer loads and validates settings and wires the application.
func newContainer(ctx context.Context) (*container.Container, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return container.New(ctx, settings)
}

// connectOnly opens the database for maintenance commands, which need
// neither the JWT secret nor the HTTP stack.
func connectOnly(ctx context.Context) error {
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return err
	}
	if settings.Database.DSN == "" {
		return errors.New("database dsn is required (DATABASE_DSN)")
	}
	if err := config.InitLogger(settings.Logging); err != nil {
		return err
	}
	return config.Connect(ctx, settings.Database)
}
