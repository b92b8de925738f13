package anamnesis

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/anamnesis/service"
	"go.uber.org/fx"
)

var Module = fx.Module("anamnesis.service",
	fx.Provide(service.NewService),
)
