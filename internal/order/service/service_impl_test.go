package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/clock"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	labelrepository "github.com/etiquetou/etiquetou/internal/label/repository"
	"github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/etiquetou/etiquetou/internal/order/repository"
	"github.com/etiquetou/etiquetou/internal/plan"
	"github.com/etiquetou/etiquetou/internal/usercontext"
	"github.com/etiquetou/etiquetou/pkg/db/pagination"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// userServiceStub satisfies the auth service with a fixed current user.
type userServiceStub struct {
	user *authdomain.User
}

func (s *userServiceStub) SignUp(context.Context, authdomain.SignUpRequest) (*authdomain.User, error) {
	return nil, nil
}
func (s *userServiceStub) Login(context.Context, authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, nil
}
func (s *userServiceStub) Logout(context.Context, string) error { return nil }
func (s *userServiceStub) Authenticate(context.Context, string) (*authdomain.Session, error) {
	return nil, nil
}
func (s *userServiceStub) UpdateProfile(context.Context, authdomain.UpdateProfileRequest) (*authdomain.User, error) {
	return nil, nil
}
func (s *userServiceStub) CurrentUser(ctx context.Context) (*authdomain.User, error) {
	if s.user == nil {
		return nil, authdomain.ErrInvalidSession
	}
	return s.user, nil
}

type testEnv struct {
	db    *gorm.DB
	svc   domain.Service
	clock *clock.FakeClock
	genID *snowflake.Node
	user  *authdomain.User
}

func newTestEnv(t *testing.T, tier plan.Tier) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Order{}, &labeldomain.Label{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	user := &authdomain.User{ID: node.Generate(), Email: "seller@example.com", Plan: tier}

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  fakeClock,
		Repo:   repository.Provide(),
		Labels: labelrepository.Provide(),
		Users:  &userServiceStub{user: user},
	})

	return &testEnv{db: db, svc: svc, clock: fakeClock, genID: node, user: user}
}

func (e *testEnv) ctx() context.Context {
	return usercontext.WithUserID(context.Background(), e.user.ID)
}

func (e *testEnv) createOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := e.svc.Create(e.ctx(), validCreateRequest())
	require.NoError(t, err)
	return order
}

func validCreateRequest() domain.CreateRequest {
	return domain.CreateRequest{
		Platform:        domain.PlatformShopee,
		PlatformOrderID: "SP-1001",
		CustomerName:    "Maria Silva",
		Street:          "Rua das Flores",
		Neighborhood:    "Centro",
		City:            "Sao Paulo",
		State:           "SP",
		Zipcode:         "01000-000",
		ShippingMethod:  domain.ShippingCorreios,
		Products:        []domain.Product{{Name: "Caneca", Quantity: 2}},
	}
}

func TestCreateStartsPending(t *testing.T) {
	env := newTestEnv(t, plan.TierPro)

	order := env.createOrder(t)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Nil(t, order.PrintedAt)
	assert.Equal(t, env.user.ID, order.UserID)
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t, plan.TierPro)

	tests := []struct {
		name    string
		mutate  func(*domain.CreateRequest)
		wantErr error
	}{
		{"unknown platform", func(r *domain.CreateRequest) { r.Platform = "amazon" }, domain.ErrInvalidPlatform},
		{"blank platform order id", func(r *domain.CreateRequest) { r.PlatformOrderID = "  " }, domain.ErrInvalidPlatformOrder},
		{"blank customer name", func(r *domain.CreateRequest) { r.CustomerName = "" }, domain.ErrInvalidCustomerName},
		{"blank city", func(r *domain.CreateRequest) { r.City = "" }, domain.ErrInvalidAddress},
		{"unknown carrier", func(r *domain.CreateRequest) { r.ShippingMethod = "fedex" }, domain.ErrInvalidShippingMethod},
		{"no products", func(r *domain.CreateRequest) { r.Products = nil }, domain.ErrInvalidProducts},
		{"zero quantity", func(r *domain.CreateRequest) { r.Products = []domain.Product{{Name: "Caneca", Quantity: 0}} }, domain.ErrInvalidProducts},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := env.svc.Create(env.ctx(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMarkPrintedEmptyBatchIsNoOp(t *testing.T) {
	env := newTestEnv(t, plan.TierFree)

	resp, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Updated)
	assert.Empty(t, resp.Failed)
}

func TestMarkPrintedTransitionsPendingOrders(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	first := env.createOrder(t)
	second := env.createOrder(t)
	env.clock.Advance(time.Hour)

	resp, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{first.ID.String(), second.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, resp.Updated, 2)
	assert.Empty(t, resp.Failed)

	for _, order := range resp.Updated {
		assert.Equal(t, domain.StatusPrinted, order.Status)
		require.NotNil(t, order.PrintedAt)
		assert.False(t, order.PrintedAt.Before(order.CreatedAt))
	}
}

func TestMarkPrintedReportsFailuresPerOrder(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	pending := env.createOrder(t)
	printed := env.createOrder(t)
	_, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{printed.ID.String()},
	})
	require.NoError(t, err)

	missing := env.genID.Generate()
	resp, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{pending.ID.String(), printed.ID.String(), missing.String(), "not-a-number"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Updated, 1)
	assert.Equal(t, pending.ID, resp.Updated[0].ID)

	reasons := map[string]string{}
	for _, failed := range resp.Failed {
		reasons[failed.ID] = failed.Reason
	}
	assert.Equal(t, "not_pending", reasons[printed.ID.String()])
	assert.Equal(t, "not_found", reasons[missing.String()])
	assert.Equal(t, "invalid_id", reasons["not-a-number"])
}

func TestMarkPrintedEnforcesBatchCeiling(t *testing.T) {
	env := newTestEnv(t, plan.TierFree)

	ids := make([]string, 0, 6)
	for range 6 {
		ids = append(ids, env.createOrder(t).ID.String())
	}

	_, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{OrderIDs: ids})
	assert.ErrorIs(t, err, domain.ErrBatchLimitExceeded)

	// Nothing transitioned.
	resp, err := env.svc.List(env.ctx(), domain.ListRequest{Status: string(domain.StatusPending)})
	require.NoError(t, err)
	assert.Len(t, resp.Orders, 6)
}

func TestMarkPrintedIgnoresOtherUsersOrders(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)
	other := newTestEnv(t, plan.TierStarter)
	// Both environments share the in-memory database, so the order exists
	// but belongs to a different user.
	foreign := other.createOrder(t)

	resp, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{foreign.ID.String()},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Updated)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "not_found", resp.Failed[0].Reason)
}

func TestUpdateAllowsPrintedToShipped(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	order := env.createOrder(t)
	_, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{order.ID.String()},
	})
	require.NoError(t, err)

	shipped := domain.StatusShipped
	tracking := "BR123456789"
	updated, err := env.svc.Update(env.ctx(), domain.UpdateRequest{
		ID:           order.ID.String(),
		Status:       &shipped,
		TrackingCode: &tracking,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	require.NotNil(t, updated.TrackingCode)
	assert.Equal(t, tracking, *updated.TrackingCode)
}

func TestUpdateRejectsOtherTransitions(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	order := env.createOrder(t)

	shipped := domain.StatusShipped
	_, err := env.svc.Update(env.ctx(), domain.UpdateRequest{ID: order.ID.String(), Status: &shipped})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	pending := domain.StatusPending
	_, err = env.svc.Update(env.ctx(), domain.UpdateRequest{ID: order.ID.String(), Status: &pending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestListFiltersByStatus(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	first := env.createOrder(t)
	env.createOrder(t)
	_, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{first.ID.String()},
	})
	require.NoError(t, err)

	printed, err := env.svc.List(env.ctx(), domain.ListRequest{Status: string(domain.StatusPrinted)})
	require.NoError(t, err)
	require.Len(t, printed.Orders, 1)
	assert.Equal(t, first.ID, printed.Orders[0].ID)

	_, err = env.svc.List(env.ctx(), domain.ListRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestListPaginatesWithCursor(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	ids := make([]snowflake.ID, 0, 5)
	for range 5 {
		ids = append(ids, env.createOrder(t).ID)
		env.clock.Advance(time.Minute)
	}

	first, err := env.svc.List(env.ctx(), domain.ListRequest{
		Paging: pagination.Pagination{PageSize: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.True(t, first.PageInfo.HasMore)
	// Newest first.
	assert.Equal(t, ids[4], first.Orders[0].ID)
	assert.Equal(t, ids[3], first.Orders[1].ID)

	second, err := env.svc.List(env.ctx(), domain.ListRequest{
		Paging: pagination.Pagination{PageSize: 2, PageToken: first.PageInfo.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, second.Orders, 2)
	require.True(t, second.PageInfo.HasMore)
	assert.Equal(t, ids[2], second.Orders[0].ID)
	assert.Equal(t, ids[1], second.Orders[1].ID)

	last, err := env.svc.List(env.ctx(), domain.ListRequest{
		Paging: pagination.Pagination{PageSize: 2, PageToken: second.PageInfo.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, last.Orders, 1)
	assert.False(t, last.PageInfo.HasMore)
	assert.Equal(t, ids[0], last.Orders[0].ID)

	_, err = env.svc.List(env.ctx(), domain.ListRequest{
		Paging: pagination.Pagination{PageToken: "%%%"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)
}

func TestStatsCountsByStatus(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	first := env.createOrder(t)
	env.createOrder(t)
	env.createOrder(t)
	_, err := env.svc.MarkPrinted(env.ctx(), domain.MarkPrintedRequest{
		OrderIDs: []string{first.ID.String()},
	})
	require.NoError(t, err)

	stats, err := env.svc.Stats(env.ctx())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Printed)
	assert.Equal(t, int64(0), stats.Shipped)
	assert.Equal(t, int64(0), stats.TotalLabels)
}

func TestOperationsRequireUser(t *testing.T) {
	env := newTestEnv(t, plan.TierStarter)

	_, err := env.svc.List(context.Background(), domain.ListRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = env.svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = env.svc.Stats(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
