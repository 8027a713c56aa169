package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings holds every runtime option of the service.
type Settings struct {
	Server   ServerSettings   `toml:"server"`
	Database DatabaseSettings `toml:"database"`
	Auth     AuthSettings     `toml:"auth"`
	Logging  LoggingSettings  `toml:"logging"`
	Metrics  MetricsSettings  `toml:"metrics"`
}

type ServerSettings struct {
	Host           string        `toml:"host"`
	Port           int           `toml:"port"`
	CORSOrigins    []string      `toml:"cors_origins"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type DatabaseSettings struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type AuthSettings struct {
	JWTSecret string `toml:"jwt_secret"`
}

type LoggingSettings struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type MetricsSettings struct {
	Enabled bool `toml:"enabled"`
}

func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host:           "0.0.0.0",
			Port:           8080,
			CORSOrigins:    []string{"*"},
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseSettings{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingSettings{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
		Metrics: MetricsSettings{Enabled: true},
	}
}

// LoadSettings starts from defaults, decodes the TOML file at path when it
// exists and finally applies environment overrides.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path == "" {
		path = os.Getenv("STREAKER_CONFIG")
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &s); err != nil {
				return s, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return s, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		s.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		s.Auth.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Server.Port = port
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		s.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		s.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		s.Metrics.Enabled = enabled
	}
	return nil
}

// Validate checks the options the server cannot start without.
func (s Settings) Validate() error {
	if s.Database.DSN == "" {
		return errors.New("database dsn is required (DATABASE_DSN)")
	}
	if len(s.Auth.JWTSecret) < 32 {
		return errors.New("jwt secret must be at least 32 bytes (JWT_SECRET)")
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", s.Server.Port)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
