package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/etiquetou/etiquetou/internal/auth/domain"
	"github.com/etiquetou/etiquetou/internal/auth/session"
	"github.com/etiquetou/etiquetou/internal/config"
	integrationdomain "github.com/etiquetou/etiquetou/internal/integration/domain"
	labeldomain "github.com/etiquetou/etiquetou/internal/label/domain"
	orderdomain "github.com/etiquetou/etiquetou/internal/order/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	signUpCalls int
	loginCalls  int
	signUpErr   error
	loginErr    error
}

func (f *fakeAuthService) SignUp(ctx context.Context, req authdomain.SignUpRequest) (*authdomain.User, error) {
	f.signUpCalls++
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &authdomain.User{ID: snowflake.ID(200), Email: req.Email, Name: req.Name}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &authdomain.LoginResult{
		User:      &authdomain.User{ID: snowflake.ID(200), Email: req.Email},
		RawToken:  "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	if rawToken != "session-token" {
		return nil, authdomain.ErrInvalidSession
	}
	return &authdomain.Session{ID: snowflake.ID(300), UserID: snowflake.ID(200)}, nil
}

func (f *fakeAuthService) CurrentUser(ctx context.Context) (*authdomain.User, error) {
	return &authdomain.User{ID: snowflake.ID(200), Email: "seller@example.com"}, nil
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, req authdomain.UpdateProfileRequest) (*authdomain.User, error) {
	return &authdomain.User{ID: snowflake.ID(200), Name: req.Name}, nil
}

type fakeOrderService struct {
	markPrintedErr error
}

func (f *fakeOrderService) List(ctx context.Context, req orderdomain.ListRequest) (*orderdomain.ListResponse, error) {
	return &orderdomain.ListResponse{}, nil
}

func (f *fakeOrderService) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Order, error) {
	return &orderdomain.Order{ID: snowflake.ID(400), Status: orderdomain.StatusPending}, nil
}

func (f *fakeOrderService) Update(ctx context.Context, req orderdomain.UpdateRequest) (*orderdomain.Order, error) {
	return &orderdomain.Order{ID: snowflake.ID(400)}, nil
}

func (f *fakeOrderService) MarkPrinted(ctx context.Context, req orderdomain.MarkPrintedRequest) (*orderdomain.MarkPrintedResponse, error) {
	if f.markPrintedErr != nil {
		return nil, f.markPrintedErr
	}
	return &orderdomain.MarkPrintedResponse{}, nil
}

func (f *fakeOrderService) Stats(ctx context.Context) (*orderdomain.StatsResponse, error) {
	return &orderdomain.StatsResponse{}, nil
}

type fakeIntegrationService struct{}

func (f *fakeIntegrationService) ListActive(ctx context.Context) ([]integrationdomain.Integration, error) {
	return nil, nil
}

func (f *fakeIntegrationService) Create(ctx context.Context, req integrationdomain.CreateRequest) (*integrationdomain.Integration, error) {
	return &integrationdomain.Integration{ID: snowflake.ID(500)}, nil
}

func (f *fakeIntegrationService) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeLabelService struct {
	createErr error
}

func (f *fakeLabelService) Create(ctx context.Context, req labeldomain.CreateRequest) (*labeldomain.Label, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &labeldomain.Label{ID: snowflake.ID(600), Format: req.Format}, nil
}

func (f *fakeLabelService) ListByOrder(ctx context.Context, orderID string) ([]labeldomain.Label, error) {
	return nil, nil
}

type serverFixture struct {
	server *Server
	auth   *fakeAuthService
	orders *fakeOrderService
	labels *fakeLabelService
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{AppName: "etiquetou-test"}
	auth := &fakeAuthService{}
	orders := &fakeOrderService{}
	labels := &fakeLabelService{}

	srv := NewServer(ServerParams{
		Gin:            NewEngine(nil),
		Cfg:            cfg,
		Sessions:       session.NewManager(cfg),
		AuthSvc:        auth,
		OrderSvc:       orders,
		IntegrationSvc: &fakeIntegrationService{},
		LabelSvc:       labels,
	})

	return &serverFixture{server: srv, auth: auth, orders: orders, labels: labels}
}

func (f *serverFixture) do(method, path string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "session-token"})
	}
	w := httptest.NewRecorder()
	f.server.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignUpReturnsCreated(t *testing.T) {
	f := newServerFixture(t)

	body, _ := json.Marshal(gin.H{"email": "seller@example.com", "password": "long-enough", "name": "Seller"})
	w := f.do(http.MethodPost, "/auth/signup", body, false)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, f.auth.signUpCalls)
}

func TestSignUpConflictMapsTo409(t *testing.T) {
	f := newServerFixture(t)
	f.auth.signUpErr = authdomain.ErrUserExists

	body, _ := json.Marshal(gin.H{"email": "seller@example.com", "password": "long-enough", "name": "Seller"})
	w := f.do(http.MethodPost, "/auth/signup", body, false)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Error.Type)
	assert.Equal(t, "user_exists", resp.Error.Code)
}

func TestSignUpMalformedBody(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodPost, "/auth/signup", []byte("{not json"), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, f.auth.signUpCalls)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newServerFixture(t)

	body, _ := json.Marshal(gin.H{"email": "seller@example.com", "password": "long-enough"})
	w := f.do(http.MethodPost, "/auth/login", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, session.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginBadCredentialsMapsTo401(t *testing.T) {
	f := newServerFixture(t)
	f.auth.loginErr = authdomain.ErrInvalidCredentials

	body, _ := json.Marshal(gin.H{"email": "seller@example.com", "password": "wrong"})
	w := f.do(http.MethodPost, "/auth/login", body, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	f := newServerFixture(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/api/integrations"},
		{http.MethodGet, "/auth/me"},
	} {
		w := f.do(route.method, route.path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestPlansIsPublic(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(http.MethodGet, "/api/plans", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Plans []struct {
			Tier      string  `json:"tier"`
			MaxLabels *int    `json:"max_labels"`
			PriceBRL  float64 `json:"price_brl"`
			BatchSize int     `json:"batch_size"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, 4)
	assert.Equal(t, "free", resp.Plans[0].Tier)
	require.NotNil(t, resp.Plans[0].MaxLabels)
	assert.Equal(t, 10, *resp.Plans[0].MaxLabels)
	assert.Nil(t, resp.Plans[2].MaxLabels)
}

func TestBatchCeilingMapsTo403(t *testing.T) {
	f := newServerFixture(t)
	f.orders.markPrintedErr = orderdomain.ErrBatchLimitExceeded

	body, _ := json.Marshal(gin.H{"order_ids": []string{"1", "2", "3"}})
	w := f.do(http.MethodPost, "/api/orders/print", body, true)
	require.Equal(t, http.StatusForbidden, w.Code)

	var resp struct {
		Error struct {
			Type string `json:"type"`
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "entitlement_denied", resp.Error.Type)
	assert.Equal(t, "batch_limit_exceeded", resp.Error.Code)
}

func TestLabelQuotaMapsTo403(t *testing.T) {
	f := newServerFixture(t)
	f.labels.createErr = labeldomain.ErrLabelQuotaExceeded

	body, _ := json.Marshal(gin.H{"order_id": "400", "format": "10x15"})
	w := f.do(http.MethodPost, "/api/labels", body, true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateOrderAuthenticated(t *testing.T) {
	f := newServerFixture(t)

	body, _ := json.Marshal(gin.H{"platform": "shopee"})
	w := f.do(http.MethodPost, "/api/orders", body, true)
	assert.Equal(t, http.StatusCreated, w.Code)
}
