package workout

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/workout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workout.service",
	fx.Provide(service.NewService),
)
