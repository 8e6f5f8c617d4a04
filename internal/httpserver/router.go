package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"
	"storefront/internal/session"
)

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	GetOrCreate(ctx context.Context, cartID *string) (*domain.Cart, bool, error)
	AddItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID string) error
	CountItems(ctx context.Context, cartID *string) (int, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, cartID *string) (*checkoutsvc.Result, error)
	OrderGroup(ctx context.Context, reference string) (*domain.OrderGroup, error)
}

// Deps lists the services the router dispatches to.
type Deps struct {
	ProductSvc  productService
	CartSvc     cartService
	CheckoutSvc checkoutService
	Sessions    session.Store

	SessionCookie string
	SessionTTL    time.Duration
	CORSOrigins   []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.ProductSvc == nil || deps.CartSvc == nil || deps.CheckoutSvc == nil {
		return nil, errors.New("product, cart and checkout services are required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if deps.SessionCookie == "" {
		deps.SessionCookie = "sessionid"
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{
		products: deps.ProductSvc,
		carts:    deps.CartSvc,
		checkout: deps.CheckoutSvc,
		sessions: deps.Sessions,
		logger:   logger,
	}

	shop := router.Group("/", session.Middleware(deps.SessionCookie, deps.SessionTTL))
	shop.GET("/products", h.listProducts)
	shop.GET("/products/:id", h.getProduct)
	shop.GET("/cart", h.viewCart)
	shop.POST("/cart/add/:productID", h.addToCart)
	shop.POST("/cart/remove/:itemID", h.removeFromCart)
	shop.POST("/checkout", h.startCheckout)
	shop.GET("/success", h.paymentSuccess)
	shop.GET("/cancel", h.paymentCancel)
	shop.GET("/orders/:reference", h.getOrderGroup)

	return router, nil
}
