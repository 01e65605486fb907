package logger

import (
	"fmt"

	"github.com/kkapil94/outflo-assignment/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production uses JSON output; everything else
// gets the console encoder at debug level unless a level is configured.
func New(mode config.Mode, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if mode.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	return cfg.Build()
}
