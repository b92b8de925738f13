package payment

import (
	"github.com/TwinexTecnologia/bodybrothers/internal/payment/repository"
	"github.com/TwinexTecnologia/bodybrothers/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
