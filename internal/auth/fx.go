package auth

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/auth/service"
	"github.com/TwinexTecnologia/bodybrothers/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(session.NewManager),
	fx.Provide(service.NewService),
)
