package order

import (
	"github.com/etiquetou/etiquetou/internal/order/repository"
	"github.com/etiquetou/etiquetou/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
