package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/clock"
	"github.com/etiquetou/etiquetou/internal/integration/domain"
	"github.com/etiquetou/etiquetou/internal/metrics"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Users   authdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	users   authdomain.Service
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("integration.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		users:   p.Users,
		metrics: p.Metrics,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Integration, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.ListActive(ctx, s.db, userID)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Integration, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, domain.ErrInvalidUser
	}

	if !orderdomain.ValidPlatform(req.Platform) {
		return nil, domain.ErrInvalidPlatform
	}
	if strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.RefreshToken) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// The active-integration ceiling is checked before the store is touched.
	active, err := s.repo.CountActive(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}
	allowed, err := plan.CanAddIntegration(user.Plan, int(active))
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.metrics.RecordEntitlementDenied("integrations")
		return nil, domain.ErrIntegrationLimitExceeded
	}

	integration := domain.Integration{
		ID:           s.genID.Generate(),
		UserID:       user.ID,
		Platform:     req.Platform,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &integration); err != nil {
		return nil, err
	}

	s.log.Info("integration connected",
		zap.String("user_id", user.ID.String()),
		zap.String("platform", string(req.Platform)),
	)

	return &integration, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.ErrInvalidUser
	}

	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.ErrInvalidID
	}

	rows, err := s.repo.Delete(ctx, s.db, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
