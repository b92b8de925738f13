package plan

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/plan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(service.NewService),
)
