package label

import (
	"github.com/etiquetou/etiquetou/internal/label/repository"
	"github.com/etiquetou/etiquetou/internal/label/service"
	"go.uber.org/fx"
)

var Module = fx.Module("label.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
