package logger

import (
	"log/slog"
	"os"
)

// Init installs the process-wide slog logger.
// "local" and "development" get a readable text handler at debug level,
// anything else gets JSON at info level.
func Init(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch env {
	case "local", "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler).With(slog.String("env", env))
	slog.SetDefault(log)
	return log
}
