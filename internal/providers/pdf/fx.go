package pdf

import (
	"github.com/etiquetou/etiquetou/internal/config"
	"go.uber.org/fx"
)

func provideStorage(cfg config.Config) Storage {
	return NewFileStorage("data/labels", cfg.LabelBaseURL)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
	fx.Provide(provideStorage),
)
