package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/etiquetou/etiquetou/internal/auth"
	"github.com/etiquetou/etiquetou/internal/auth/session"
	"github.com/etiquetou/etiquetou/internal/clock"
	"github.com/etiquetou/etiquetou/internal/config"
	"github.com/etiquetou/etiquetou/internal/integration"
	"github.com/etiquetou/etiquetou/internal/label"
	"github.com/etiquetou/etiquetou/internal/logger"
	"github.com/etiquetou/etiquetou/internal/metrics"
	"github.com/etiquetou/etiquetou/internal/migration"
	"github.com/etiquetou/etiquetou/internal/order"
	"github.com/etiquetou/etiquetou/internal/providers/pdf"
	"github.com/etiquetou/etiquetou/internal/server"
	"github.com/etiquetou/etiquetou/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		metrics.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// Functional domains
		auth.Module,
		session.Module,
		pdf.Module,
		order.Module,
		integration.Module,
		label.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
