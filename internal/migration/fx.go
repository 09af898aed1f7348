package migration

import (
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/config"
	integrationdomain "github.com/etiquetou/etiquetou/internal/integration/domain"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// SQLite and MySQL are for local setups only; let gorm derive
			// the schema instead of maintaining per-dialect SQL.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&integrationdomain.Integration{},
				&orderdomain.Order{},
				&labeldomain.Label{},
			); err != nil {
				return err
			}
		}

		if cfg.BootstrapDevUser && !cfg.IsProduction() {
			return seed.EnsureDevUser(conn)
		}
		return nil
	}),
)
