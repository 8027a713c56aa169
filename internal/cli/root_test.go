package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/streaker/internal/config"
)

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "lambda", "migrate", "seed"} {
		assert.True(t, names[want], want)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, serveCmd.Flags().Lookup("migrate"))
}

func TestMaintenanceCommandsRequireDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("STREAKER_CONFIG", "")
	configPath = ""

	err := connectOnly(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DSN")
}

func TestServeValidatesSettings(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/streaker")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("STREAKER_CONFIG", "")
	configPath = ""

	_, err := newContainer(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseLoggedWarnsOnError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	prev := config.Logger
	config.Logger = logger
	t.Cleanup(func() { config.Logger = prev })

	closeLogged(closerFunc(func() error { return nil }), "database")
	assert.Empty(t, hook.AllEntries())

	closeLogged(closerFunc(func() error { return errors.New("broken pipe") }), "database")
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Failed to close database", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "broken pipe")
}
