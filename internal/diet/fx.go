package diet

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/diet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("diet.service",
	fx.Provide(service.NewService),
)
