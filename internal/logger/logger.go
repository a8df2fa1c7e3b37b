package logger

import (
	"log/slog"
	"os"

	"github.com/elmscz/elms-client/internal/config"
)

// New creates a preconfigured slog.Logger. Debug mode lowers the level so
// dry-run order submissions show what would have been sent.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.DebugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
