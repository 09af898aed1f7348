package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/clock"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	"github.com/etiquetou/etiquetou/internal/metrics"
	"github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"github.com/etiquetou/etiquetou/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Labels  labeldomain.Repository
	Users   authdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	labels  labeldomain.Repository
	users   authdomain.Service
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		labels:  p.Labels,
		users:   p.Users,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	filter := domain.ListFilter{}
	if status := strings.TrimSpace(req.Status); status != "" {
		switch domain.Status(status) {
		case domain.StatusPending, domain.StatusPrinted, domain.StatusShipped:
			filter.Status = domain.Status(status)
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	if token := strings.TrimSpace(req.Paging.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		afterID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		afterCreatedAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		filter.AfterID = afterID
		filter.AfterCreatedAt = afterCreatedAt
	}

	limit := req.Paging.Limit()
	filter.Limit = limit + 1

	orders, err := s.repo.List(ctx, s.db, userID, filter)
	if err != nil {
		return nil, err
	}

	orders, pageInfo, err := pagination.BuildCursorPageInfo(orders, limit, func(o domain.Order) pagination.Cursor {
		return pagination.Cursor{
			ID:        o.ID.String(),
			CreatedAt: o.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	})
	if err != nil {
		return nil, err
	}

	return &domain.ListResponse{Orders: orders, PageInfo: pageInfo}, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:                  s.genID.Generate(),
		UserID:              userID,
		Platform:            req.Platform,
		PlatformOrderID:     strings.TrimSpace(req.PlatformOrderID),
		Status:              domain.StatusPending,
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerPhone:       req.CustomerPhone,
		CustomerEmail:       req.CustomerEmail,
		AddressStreet:       strings.TrimSpace(req.Street),
		AddressNumber:       req.Number,
		AddressComplement:   req.Complement,
		AddressNeighborhood: strings.TrimSpace(req.Neighborhood),
		AddressCity:         strings.TrimSpace(req.City),
		AddressState:        strings.TrimSpace(req.State),
		AddressZipcode:      strings.TrimSpace(req.Zipcode),
		ShippingMethod:      req.ShippingMethod,
		TrackingCode:        req.TrackingCode,
		Products:            datatypes.JSONSlice[domain.Product](req.Products),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Insert(ctx, s.db, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func validateCreate(req *domain.CreateRequest) error {
	if !domain.ValidPlatform(req.Platform) {
		return domain.ErrInvalidPlatform
	}
	if strings.TrimSpace(req.PlatformOrderID) == "" {
		return domain.ErrInvalidPlatformOrder
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return domain.ErrInvalidCustomerName
	}
	for _, field := range []string{req.Street, req.Neighborhood, req.City, req.State, req.Zipcode} {
		if strings.TrimSpace(field) == "" {
			return domain.ErrInvalidAddress
		}
	}
	if !domain.ValidShippingMethod(req.ShippingMethod) {
		return domain.ErrInvalidShippingMethod
	}
	if len(req.Products) == 0 {
		return domain.ErrInvalidProducts
	}
	for _, product := range req.Products {
		if strings.TrimSpace(product.Name) == "" || product.Quantity < 1 {
			return domain.ErrInvalidProducts
		}
	}
	return nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Order, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	id, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	fields := map[string]any{}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, domain.ErrInvalidCustomerName
		}
		fields["customer_name"] = name
	}
	if req.CustomerPhone != nil {
		fields["customer_phone"] = *req.CustomerPhone
	}
	if req.CustomerEmail != nil {
		fields["customer_email"] = *req.CustomerEmail
	}
	if req.TrackingCode != nil {
		fields["tracking_code"] = *req.TrackingCode
	}
	if req.Status != nil {
		// The only status change allowed here is printed -> shipped, fed by
		// carrier tracking. pending -> printed goes through MarkPrinted.
		if *req.Status != domain.StatusShipped {
			return nil, domain.ErrInvalidTransition
		}
		if existing.Status != domain.StatusPrinted {
			return nil, domain.ErrInvalidTransition
		}
		fields["status"] = domain.StatusShipped
	}

	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = s.clock.Now()

	rows, err := s.repo.UpdateFields(ctx, s.db, userID, id, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	return s.repo.FindByID(ctx, s.db, userID, id)
}

func (s *Service) MarkPrinted(ctx context.Context, req domain.MarkPrintedRequest) (*domain.MarkPrintedResponse, error) {
	user, err := s.users.CurrentUser(ctx)
	if err != nil {
		return nil, domain.ErrInvalidUser
	}

	// An empty batch is a no-op, never an error.
	if len(req.OrderIDs) == 0 {
		return &domain.MarkPrintedResponse{}, nil
	}

	allowed, err := plan.CanSelectBatch(user.Plan, len(req.OrderIDs))
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.metrics.RecordEntitlementDenied("batch_size")
		return nil, domain.ErrBatchLimitExceeded
	}

	now := s.clock.Now()
	resp := &domain.MarkPrintedResponse{}
	var updatedIDs []snowflake.ID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, raw := range req.OrderIDs {
			id, parseErr := parseID(raw)
			if parseErr != nil {
				resp.Failed = append(resp.Failed, domain.FailedOrder{ID: raw, Reason: "invalid_id"})
				continue
			}

			existing, findErr := s.repo.FindByID(ctx, tx, user.ID, id)
			if findErr != nil {
				return findErr
			}
			if existing == nil {
				resp.Failed = append(resp.Failed, domain.FailedOrder{ID: raw, Reason: "not_found"})
				continue
			}
			if existing.Status != domain.StatusPending {
				resp.Failed = append(resp.Failed, domain.FailedOrder{ID: raw, Reason: "not_pending"})
				continue
			}

			transitioned, markErr := s.repo.MarkPrinted(ctx, tx, user.ID, id, now)
			if markErr != nil {
				return markErr
			}
			if !transitioned {
				resp.Failed = append(resp.Failed, domain.FailedOrder{ID: raw, Reason: "not_pending"})
				continue
			}
			updatedIDs = append(updatedIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(updatedIDs) > 0 {
		updated, listErr := s.repo.ListByIDs(ctx, s.db, user.ID, updatedIDs)
		if listErr != nil {
			return nil, listErr
		}
		resp.Updated = updated
		s.metrics.RecordOrdersPrinted(len(updated))
	}

	s.log.Info("batch print applied",
		zap.String("user_id", user.ID.String()),
		zap.Int("updated", len(resp.Updated)),
		zap.Int("failed", len(resp.Failed)),
	)

	return resp, nil
}

func (s *Service) Stats(ctx context.Context) (*domain.StatsResponse, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	// Two independent reads; the result is a best-effort snapshot.
	counts, err := s.repo.CountByStatus(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	totalLabels, err := s.labels.CountByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	resp := &domain.StatsResponse{
		Pending:     counts[domain.StatusPending],
		Printed:     counts[domain.StatusPrinted],
		Shipped:     counts[domain.StatusShipped],
		TotalLabels: totalLabels,
	}
	resp.TotalOrders = resp.Pending + resp.Printed + resp.Shipped
	return resp, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
