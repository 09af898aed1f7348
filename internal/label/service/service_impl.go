package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/clock"
	"github.com/etiquetou/etiquetou/internal/label/domain"
	"github.com/etiquetou/etiquetou/internal/metrics"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/etiquetou/etiquetou/internal/providers/pdf"
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Orders   orderdomain.Repository
	Users    authdomain.Service
	Renderer pdf.Provider
	Storage  pdf.Storage
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	orders   orderdomain.Repository
	users    authdomain.Service
	renderer pdf.Provider
	storage  pdf.Storage
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("label.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		orders:   p.Orders,
		users:    p.Users,
		renderer: p.Renderer,
		storage:  p.Storage,
		metrics:  p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Label, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if !domain.ValidFormat(req.Format) {
		return nil, domain.ErrInvalidFormat
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(req.OrderID))
	if err != nil || orderID == 0 {
		return nil, domain.ErrInvalidID
	}

	order, err := s.orders.FindByID(ctx, s.db, user.ID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	now := s.clock.Now()

	// Quota is per billing period (calendar month, UTC).
	quotaUsed, err := s.repo.CountByUserSince(ctx, s.db, user.ID, startOfPeriod(now))
	if err != nil {
		return nil, err
	}
	allowed, err := plan.CanGenerateLabel(user.Plan, int(quotaUsed))
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.metrics.RecordEntitlementDenied("labels")
		return nil, domain.ErrLabelQuotaExceeded
	}

	rendered, err := s.renderer.GenerateLabel(ctx, string(req.Format), labelData(order))
	if err != nil {
		return nil, err
	}

	pdfURL, err := s.storage.Put(ctx, uuid.NewString(), rendered)
	if err != nil {
		return nil, err
	}

	label := domain.Label{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		OrderID:   orderID,
		PDFURL:    pdfURL,
		Format:    req.Format,
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &label); err != nil {
		return nil, err
	}

	s.metrics.RecordLabelGenerated(string(req.Format))
	s.log.Info("label generated",
		zap.String("user_id", user.ID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("format", string(req.Format)),
	)

	return &label, nil
}

func (s *Service) ListByOrder(ctx context.Context, rawOrderID string) ([]domain.Label, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, authdomain.ErrInvalidSession
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(rawOrderID))
	if err != nil || orderID == 0 {
		return nil, domain.ErrInvalidID
	}

	return s.repo.ListByOrder(ctx, s.db, userID, orderID)
}

func startOfPeriod(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func labelData(order *orderdomain.Order) pdf.LabelData {
	addressLines := []string{order.AddressStreet}
	if order.AddressNumber != nil && *order.AddressNumber != "" {
		addressLines[0] = fmt.Sprintf("%s, %s", order.AddressStreet, *order.AddressNumber)
	}
	if order.AddressComplement != nil && *order.AddressComplement != "" {
		addressLines = append(addressLines, *order.AddressComplement)
	}
	addressLines = append(addressLines,
		order.AddressNeighborhood,
		fmt.Sprintf("%s - %s", order.AddressCity, order.AddressState),
		order.AddressZipcode,
	)

	data := pdf.LabelData{
		RecipientName:   order.CustomerName,
		AddressLines:    addressLines,
		Carrier:         string(order.ShippingMethod),
		Platform:        string(order.Platform),
		PlatformOrderID: order.PlatformOrderID,
		Items:           make([]pdf.LabelItem, 0, len(order.Products)),
	}
	if order.TrackingCode != nil {
		data.TrackingCode = *order.TrackingCode
	}
	for _, product := range order.Products {
		data.Items = append(data.Items, pdf.LabelItem{
			Name:     product.Name,
			Quantity: product.Quantity,
		})
	}
	return data
}
