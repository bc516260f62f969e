package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamestore/internal/domain"
	statsrepo "gamestore/internal/repository/stats"
	authsvc "gamestore/internal/service/auth"
	catalogsvc "gamestore/internal/service/catalog"
	sellersvc "gamestore/internal/service/seller"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAuthSvc struct {
	usersByToken map[string]*domain.User
	signupUser   *domain.User
	signupErr    error
	loginUser    *domain.User
	loginErr     error
	grantErr     error
	lastGrantID  string
	lastRoles    []string
}

func (s *stubAuthSvc) Signup(_ context.Context, _ authsvc.SignupInput) (*domain.User, error) {
	return s.signupUser, s.signupErr
}

func (s *stubAuthSvc) Login(_ context.Context, _, _ string) (*domain.User, string, string, error) {
	return s.loginUser, "access", "refresh", s.loginErr
}

func (s *stubAuthSvc) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.usersByToken[token]; ok {
		return u, nil
	}
	return nil, authsvc.ErrInvalidToken
}

func (s *stubAuthSvc) Refresh(_ context.Context, _ string) (string, error) {
	return "access", nil
}

func (s *stubAuthSvc) GrantRoles(_ context.Context, userID string, roles []string) error {
	s.lastGrantID = userID
	s.lastRoles = roles
	return s.grantErr
}

func (s *stubAuthSvc) AccessTTLSeconds() int { return 3600 }

type stubCatalogSvc struct {
	games         []domain.Game
	listErr       error
	lastModerator bool
	game          *domain.Game
	getErr        error
	created       *domain.Game
	createErr     error
	category      *domain.Category
	categoryErr   error
}

func (s *stubCatalogSvc) List(_ context.Context, _ domain.GameFilter, moderator bool) ([]domain.Game, error) {
	s.lastModerator = moderator
	return s.games, s.listErr
}

func (s *stubCatalogSvc) Get(_ context.Context, _ string) (*domain.Game, error) {
	return s.game, s.getErr
}

func (s *stubCatalogSvc) CreateGame(_ context.Context, _ catalogsvc.GameInput, _ *string) (*domain.Game, error) {
	return s.created, s.createErr
}

func (s *stubCatalogSvc) UpdateGame(_ context.Context, _ string, _ catalogsvc.GameInput) (*domain.Game, error) {
	return s.created, s.createErr
}

func (s *stubCatalogSvc) DeleteGame(_ context.Context, _ string) error { return nil }

func (s *stubCatalogSvc) Categories(_ context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (s *stubCatalogSvc) CreateCategory(_ context.Context, _ catalogsvc.CategoryInput) (*domain.Category, error) {
	return s.category, s.categoryErr
}

func (s *stubCatalogSvc) UpdateCategory(_ context.Context, _ string, _ catalogsvc.CategoryInput) (*domain.Category, error) {
	return s.category, s.categoryErr
}

func (s *stubCatalogSvc) DeleteCategory(_ context.Context, _ string) error { return nil }

type stubCartSvc struct {
	line      *domain.CartLine
	addErr    error
	removeErr error
	cart      domain.Cart
	getErr    error
}

func (s *stubCartSvc) Add(_ context.Context, _, _ string) (*domain.CartLine, error) {
	return s.line, s.addErr
}

func (s *stubCartSvc) Remove(_ context.Context, _, _ string) error { return s.removeErr }

func (s *stubCartSvc) Get(_ context.Context, _ string) (domain.Cart, error) {
	return s.cart, s.getErr
}

type stubOrderSvc struct {
	placed     *domain.Order
	placeErr   error
	orders     []domain.Order
	order      *domain.Order
	getErr     error
	updated    *domain.Order
	updateErr  error
	lastStatus string
}

func (s *stubOrderSvc) Place(_ context.Context, _ string) (*domain.Order, error) {
	return s.placed, s.placeErr
}

func (s *stubOrderSvc) ListFor(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubOrderSvc) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, _, status string) (*domain.Order, error) {
	s.lastStatus = status
	return s.updated, s.updateErr
}

type stubFavoriteSvc struct {
	addErr    error
	removeErr error
	list      []domain.Favorite
}

func (s *stubFavoriteSvc) Add(_ context.Context, _, _ string) error    { return s.addErr }
func (s *stubFavoriteSvc) Remove(_ context.Context, _, _ string) error { return s.removeErr }
func (s *stubFavoriteSvc) ListFor(_ context.Context, _ string) ([]domain.Favorite, error) {
	return s.list, nil
}

type stubSellerSvc struct {
	profile   *domain.SellerProfile
	regErr    error
	stores    []domain.SellerProfile
	detail    *sellersvc.StoreDetail
	detailErr error
	review    *domain.Review
	reviewErr error
	dashboard *sellersvc.Dashboard
	dashErr   error
}

func (s *stubSellerSvc) Register(_ context.Context, _, _, _ string) (*domain.SellerProfile, error) {
	return s.profile, s.regErr
}

func (s *stubSellerSvc) Stores(_ context.Context, _ float64) ([]domain.SellerProfile, error) {
	return s.stores, nil
}

func (s *stubSellerSvc) Store(_ context.Context, _ string) (*sellersvc.StoreDetail, error) {
	return s.detail, s.detailErr
}

func (s *stubSellerSvc) AddReview(_ context.Context, _, _ string, _ int, _ string) (*domain.Review, error) {
	return s.review, s.reviewErr
}

func (s *stubSellerSvc) DashboardFor(_ context.Context, _ string) (*sellersvc.Dashboard, error) {
	return s.dashboard, s.dashErr
}

type stubStatsSvc struct {
	totals *statsrepo.Totals
	err    error
}

func (s *stubStatsSvc) Totals(_ context.Context) (*statsrepo.Totals, error) {
	return s.totals, s.err
}

func testDeps(auth AuthService) Deps {
	if auth == nil {
		auth = &stubAuthSvc{}
	}
	return Deps{
		AuthSvc:     auth,
		CatalogSvc:  &stubCatalogSvc{},
		CartSvc:     &stubCartSvc{},
		OrderSvc:    &stubOrderSvc{},
		FavoriteSvc: &stubFavoriteSvc{},
		SellerSvc:   &stubSellerSvc{},
		StatsSvc:    &stubStatsSvc{},
	}
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDepsValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatal("expected missing dependency error")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(t, testDeps(nil))
	for _, path := range []string{"/cart", "/orders", "/favorites", "/me"} {
		rec := doRequest(router, http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestAdminRequiresModerator(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"regular-token": {ID: "u1"},
	}}
	router := testRouter(t, testDeps(auth))

	rec := doRequest(router, http.MethodPost, "/admin/games", "regular-token",
		`{"title":"Game","price":"9.99","categoryId":"c1"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminAllowsModerator(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"mod-token": {ID: "u1", Roles: []string{domain.RoleModerator}},
	}}
	deps := testDeps(auth)
	deps.CatalogSvc = &stubCatalogSvc{category: &domain.Category{ID: "c1", Name: "Action"}}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/admin/categories", "mod-token",
		`{"name":"Action"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestOwnerDashboardForbiddenForModerator(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"mod-token":   {ID: "u1", Roles: []string{domain.RoleModerator}},
		"owner-token": {ID: "u2", Roles: []string{domain.RoleOwner}},
	}}
	deps := testDeps(auth)
	deps.StatsSvc = &stubStatsSvc{totals: &statsrepo.Totals{Users: 3, Orders: 2}}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/admin/dashboard", "mod-token", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/admin/dashboard", "owner-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"users":3`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSignupHandler_Created(t *testing.T) {
	auth := &stubAuthSvc{signupUser: &domain.User{ID: "u1", Email: "user@example.com"}}
	router := testRouter(t, testDeps(auth))

	rec := doRequest(router, http.MethodPost, "/signup", "",
		`{"email":"user@example.com","username":"user","password":"longenough"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"user@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	auth := &stubAuthSvc{loginErr: authsvc.ErrInvalidCredentials}
	router := testRouter(t, testDeps(auth))

	rec := doRequest(router, http.MethodPost, "/login", "",
		`{"email":"user@example.com","password":"badpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestListGamesDetectsModerator(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"mod-token": {ID: "u1", Roles: []string{domain.RoleModerator}},
	}}
	catalog := &stubCatalogSvc{}
	deps := testDeps(auth)
	deps.CatalogSvc = catalog
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/games?q=rogue", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if catalog.lastModerator {
		t.Fatal("anonymous listing must not search descriptions")
	}
	if !strings.Contains(rec.Body.String(), `"games":[]`) {
		t.Fatalf("expected empty games array, got %s", rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/games?q=rogue", "mod-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !catalog.lastModerator {
		t.Fatal("moderator listing must search descriptions")
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"user-token": {ID: "u1"},
	}}
	deps := testDeps(auth)
	deps.OrderSvc = &stubOrderSvc{placeErr: domain.ErrEmptyCart}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/orders", "user-token", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestPlaceOrderCreated(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"user-token": {ID: "u1"},
	}}
	deps := testDeps(auth)
	deps.OrderSvc = &stubOrderSvc{placed: &domain.Order{
		ID:         "order-1",
		Status:     domain.OrderStatusPending,
		TotalPrice: decimal.RequireFromString("21.00"),
	}}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/orders", "user-token", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"pending"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateOrderStatusInvalid(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"mod-token": {ID: "u1", Roles: []string{domain.RoleModerator}},
	}}
	deps := testDeps(auth)
	deps.OrderSvc = &stubOrderSvc{updateErr: domain.ErrInvalidStatus}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodPut, "/admin/orders/order-1/status", "mod-token",
		`{"status":"shipped"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRemoveCartLineNotFound(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"user-token": {ID: "u1"},
	}}
	deps := testDeps(auth)
	deps.CartSvc = &stubCartSvc{removeErr: domain.ErrNotFound}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodDelete, "/cart/items/line-1", "user-token", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUnknownErrorsAreOpaque500s(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"user-token": {ID: "u1"},
	}}
	deps := testDeps(auth)
	deps.CartSvc = &stubCartSvc{
		getErr: errors.New("failed to connect to host=localhost user=gamestore database=gamestore"),
	}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/cart", "user-token", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "host=localhost") {
		t.Fatalf("infrastructure detail leaked to the client: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal error") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestValidationErrorsKeepTheirMessage(t *testing.T) {
	auth := &stubAuthSvc{usersByToken: map[string]*domain.User{
		"user-token": {ID: "u1"},
	}}
	deps := testDeps(auth)
	deps.CartSvc = &stubCartSvc{addErr: domain.InvalidInput("gameId required")}
	router := testRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/cart/items/x", "user-token", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "gameId required") {
		t.Fatalf("expected validation message, got %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(t, testDeps(nil))
	rec := doRequest(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
