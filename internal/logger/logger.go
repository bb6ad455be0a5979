package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/vokabel-trainer/internal/config"
)

// New builds a JSON production logger in production and a human readable
// development logger everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}

// Named returns a child logger tagged with the component name.
func Named(l *zap.Logger, component string) *zap.Logger {
	return l.Named(component).With(zap.String("component", component))
}
