package server

import (
	"context"
	"net/http"
	"time"

	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/auth/session"
	"github.com/etiquetou/etiquetou/internal/config"
	integrationdomain "github.com/etiquetou/etiquetou/internal/integration/domain"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	"github.com/etiquetou/etiquetou/internal/metrics"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	sessions       *session.Manager
	authsvc        authdomain.Service
	ordersvc       orderdomain.Service
	integrationsvc integrationdomain.Service
	labelsvc       labeldomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Sessions       *session.Manager
	AuthSvc        authdomain.Service
	OrderSvc       orderdomain.Service
	IntegrationSvc integrationdomain.Service
	LabelSvc       labeldomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		sessions:       p.Sessions,
		authsvc:        p.AuthSvc,
		ordersvc:       p.OrderSvc,
		integrationsvc: p.IntegrationSvc,
		labelsvc:       p.LabelSvc,
	}

	s.registerAuthRoutes()
	s.registerAPIRoutes()

	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.SignUp)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.WebAuthRequired(), s.Me)
	auth.PATCH("/me", s.WebAuthRequired(), s.UpdateProfile)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// Plan table is public marketing data.
	api.GET("/plans", s.ListPlans)

	// -------- Orders --------
	api.GET("/orders", s.WebAuthRequired(), s.ListOrders)
	api.POST("/orders", s.WebAuthRequired(), s.CreateOrder)
	api.PATCH("/orders/:id", s.WebAuthRequired(), s.UpdateOrder)
	api.POST("/orders/print", s.WebAuthRequired(), s.MarkOrdersPrinted)
	api.GET("/orders/:id/labels", s.WebAuthRequired(), s.ListOrderLabels)

	// -------- Stats --------
	api.GET("/stats", s.WebAuthRequired(), s.UserStats)

	// -------- Integrations --------
	api.GET("/integrations", s.WebAuthRequired(), s.ListIntegrations)
	api.POST("/integrations", s.WebAuthRequired(), s.CreateIntegration)
	api.DELETE("/integrations/:id", s.WebAuthRequired(), s.DeleteIntegration)

	// -------- Labels --------
	api.POST("/labels", s.WebAuthRequired(), s.CreateLabel)
}
