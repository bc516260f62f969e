package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"gamestore/internal/domain"
	statsrepo "gamestore/internal/repository/stats"
	authsvc "gamestore/internal/service/auth"
	catalogsvc "gamestore/internal/service/catalog"
	sellersvc "gamestore/internal/service/seller"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthService resolves credentials and tokens to users and administers roles.
type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GrantRoles(ctx context.Context, userID string, roles []string) error
	AccessTTLSeconds() int
}

type CatalogService interface {
	List(ctx context.Context, filter domain.GameFilter, moderator bool) ([]domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	CreateGame(ctx context.Context, in catalogsvc.GameInput, sellerID *string) (*domain.Game, error)
	UpdateGame(ctx context.Context, id string, in catalogsvc.GameInput) (*domain.Game, error)
	DeleteGame(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in catalogsvc.CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in catalogsvc.CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type CartService interface {
	Add(ctx context.Context, userID, gameID string) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, lineID string) error
	Get(ctx context.Context, userID string) (domain.Cart, error)
}

type OrderService interface {
	Place(ctx context.Context, userID string) (*domain.Order, error)
	ListFor(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

type FavoriteService interface {
	Add(ctx context.Context, userID, gameID string) error
	Remove(ctx context.Context, userID, gameID string) error
	ListFor(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type SellerService interface {
	Register(ctx context.Context, userID, storeName, description string) (*domain.SellerProfile, error)
	Stores(ctx context.Context, minRating float64) ([]domain.SellerProfile, error)
	Store(ctx context.Context, id string) (*sellersvc.StoreDetail, error)
	AddReview(ctx context.Context, userID, storeID string, rating int, comment string) (*domain.Review, error)
	DashboardFor(ctx context.Context, userID string) (*sellersvc.Dashboard, error)
}

type StatsService interface {
	Totals(ctx context.Context) (*statsrepo.Totals, error)
}

// Deps gathers every service the router needs.
type Deps struct {
	AuthSvc     AuthService
	CatalogSvc  CatalogService
	CartSvc     CartService
	OrderSvc    OrderService
	FavoriteSvc FavoriteService
	SellerSvc   SellerService
	StatsSvc    StatsService
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.CatalogSvc == nil || d.CartSvc == nil || d.OrderSvc == nil ||
		d.FavoriteSvc == nil || d.SellerSvc == nil || d.StatsSvc == nil {
		return errors.New("httpserver: missing dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	// Public storefront.
	router.GET("/games", listGamesHandler(deps.CatalogSvc, deps.AuthSvc))
	router.GET("/games/:id", getGameHandler(deps.CatalogSvc))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))
	router.GET("/stores", listStoresHandler(deps.SellerSvc))
	router.GET("/stores/:id", getStoreHandler(deps.SellerSvc))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))
	router.POST("/token/refresh", refreshHandler(deps.AuthSvc))

	// Authenticated storefront.
	authed := router.Group("/", authRequired(deps.AuthSvc))
	{
		authed.GET("/me", meHandler())

		authed.GET("/cart", getCartHandler(deps.CartSvc))
		authed.POST("/cart/items/:gameID", addToCartHandler(deps.CartSvc))
		authed.DELETE("/cart/items/:lineID", removeFromCartHandler(deps.CartSvc))

		authed.POST("/orders", placeOrderHandler(deps.OrderSvc))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

		authed.GET("/favorites", listFavoritesHandler(deps.FavoriteSvc))
		authed.POST("/favorites/:gameID", addFavoriteHandler(deps.FavoriteSvc))
		authed.DELETE("/favorites/:gameID", removeFavoriteHandler(deps.FavoriteSvc))

		authed.POST("/sellers", registerSellerHandler(deps.SellerSvc))
		authed.GET("/sellers/dashboard", sellerDashboardHandler(deps.SellerSvc))
		authed.POST("/stores/:id/reviews", addReviewHandler(deps.SellerSvc))
	}

	// Moderation panel: catalog mutation and order status management.
	mod := router.Group("/admin", authRequired(deps.AuthSvc), requireRole(domain.RoleModerator))
	{
		mod.POST("/games", createGameHandler(deps.CatalogSvc))
		mod.PUT("/games/:id", updateGameHandler(deps.CatalogSvc))
		mod.DELETE("/games/:id", deleteGameHandler(deps.CatalogSvc))
		mod.POST("/categories", createCategoryHandler(deps.CatalogSvc))
		mod.PUT("/categories/:id", updateCategoryHandler(deps.CatalogSvc))
		mod.DELETE("/categories/:id", deleteCategoryHandler(deps.CatalogSvc))
		mod.GET("/orders", listAllOrdersHandler(deps.OrderSvc))
		mod.PUT("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
	}

	// Owner-only aggregates and role administration.
	owner := router.Group("/admin", authRequired(deps.AuthSvc), requireRole(domain.RoleOwner))
	{
		owner.GET("/dashboard", dashboardHandler(deps.StatsSvc))
		owner.PUT("/users/:id/roles", grantRolesHandler(deps.AuthSvc))
	}

	return router, nil
}
