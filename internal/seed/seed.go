// Package seed bootstraps the first trainer account so a fresh install is
// usable without manual database edits.
package seed

import (
	"context"

	authdomain "github.com/TwinexTecnologia/bodybrothers/internal/auth/domain"
	"github.com/TwinexTecnologia/bodybrothers/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	defaultTrainerName     = "Trainer"
	defaultTrainerEmail    = "trainer@bodybrothers.local"
	defaultTrainerPassword = "trainer"
)

// EnsureBootstrapTrainer creates the configured trainer account when it does
// not exist. Without configured credentials a development default is used,
// but never in production.
func EnsureBootstrapTrainer(ctx context.Context, authsvc authdomain.Service, cfg config.Config, log *zap.Logger) error {
	email := cfg.BootstrapTrainerEmail
	pass := cfg.BootstrapTrainerPassword

	if email == "" || pass == "" {
		if cfg.IsProduction() {
			log.Warn("bootstrap trainer credentials not configured, skipping seed")
			return nil
		}
		email = defaultTrainerEmail
		pass = defaultTrainerPassword
	}

	_, err := authsvc.EnsureTrainer(ctx, defaultTrainerName, email, pass)
	return err
}

var Module = fx.Module("seed",
	fx.Invoke(func(authsvc authdomain.Service, cfg config.Config, log *zap.Logger) error {
		return EnsureBootstrapTrainer(context.Background(), authsvc, cfg, log)
	}),
)
