package config

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It is usable before InitLogger runs.
var Logger = logrus.StandardLogger()

type userIDKey struct{}

// InitLogger configures level, format and output. When a file is set, output
// goes to both stdout and a rotating file.
func InitLogger(cfg LoggingSettings) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{})

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return err
		}
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	l.SetOutput(out)

	Logger = l
	return nil
}

// ContextWithUserID tags ctx so that WithContext includes the user id.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// WithContext returns a logger carrying the request id and authenticated user.
func WithContext(ctx context.Context) logrus.FieldLogger {
	fields := logrus.Fields{}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		fields["request_id"] = reqID
	}
	if userID, ok := ctx.Value(userIDKey{}).(string); ok && userID != "" {
		fields["user_id"] = userID
	}
	return Logger.WithFields(fields)
}
