package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"starbrew/internal/cart"
	"starbrew/internal/domain"
	"starbrew/internal/service/identity"
)

type catalogService interface {
	Resolve(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
}

type identityService interface {
	Signup(ctx context.Context, in identity.SignupInput) (*domain.Customer, error)
	Signin(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type rewardsService interface {
	Balance(ctx context.Context, customerID string) (int64, error)
}

type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, sessionID string, customer *domain.Customer) (string, error)
}

// Deps carries the services the router needs.
type Deps struct {
	CatalogSvc  catalogService
	Carts       *cart.Manager
	CheckoutSvc checkoutService
	IdentitySvc identityService
	RewardsSvc  rewardsService
	Orders      orderReader
	Categories  []domain.Category
	TaxRateBps  int64
}

func (d Deps) validate() error {
	if d.CatalogSvc == nil || d.Carts == nil || d.CheckoutSvc == nil || d.IdentitySvc == nil {
		return errors.New("httpserver: missing required dependency")
	}
	return nil
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", sessionHeader},
		ExposeHeaders:    []string{sessionHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(authMiddleware(deps.IdentitySvc))

	api.GET("/categories", h.listCategories)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	api.POST("/signup", h.signup)
	api.POST("/signin", h.signin)

	authed := api.Group("")
	authed.Use(requireCustomer())
	authed.GET("/me", h.me)
	authed.GET("/me/rewards", h.rewards)
	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/:id", h.getOrder)

	carted := api.Group("")
	carted.Use(sessionMiddleware())
	carted.GET("/cart", h.getCart)
	carted.POST("/cart/items", h.addCartItem)
	carted.PATCH("/cart/items/:productID", h.updateCartItem)
	carted.DELETE("/cart/items/:productID", h.removeCartItem)
	carted.DELETE("/cart", h.clearCart)
	carted.POST("/checkout", h.checkout)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
