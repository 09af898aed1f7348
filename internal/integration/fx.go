package integration

import (
	"github.com/etiquetou/etiquetou/internal/integration/repository"
	"github.com/etiquetou/etiquetou/internal/integration/service"
	"go.uber.org/fx"
)

var Module = fx.Module("integration.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
