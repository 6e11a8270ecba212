package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Flasky06/unify-pos/docs"
	"github.com/Flasky06/unify-pos/internal/api/handler"
	"github.com/Flasky06/unify-pos/internal/api/middleware"
	"github.com/Flasky06/unify-pos/internal/core/domain"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	JWTSecret string
	Sessions  middleware.SessionReader
	Auth      ports.AuthService
	Pos       ports.PosService
	Shops     ports.ShopService
	Stocks    ports.StockService
	Billing   ports.BillingService
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	posHandler := handler.NewPosHandler(d.Pos)
	shopHandler := handler.NewShopHandler(d.Shops)
	stockHandler := handler.NewStockHandler(d.Stocks)
	billingHandler := handler.NewBillingHandler(d.Billing)

	authn := middleware.Auth(d.JWTSecret, d.Sessions)
	guard := func(req middleware.Requirement) echo.MiddlewareFunc {
		return middleware.Guard(req, d.Log)
	}

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authn)

	v1.GET("/users/me", authHandler.Me)
	v1.POST("/auth/logout", authHandler.Logout)

	// POS: cashier-facing cart and checkout.
	pos := v1.Group("/pos", guard(middleware.Requirement{Permission: domain.PermProcessSales}))
	pos.GET("/cart", posHandler.Cart)
	pos.POST("/cart/items", posHandler.AddItem)
	pos.PUT("/cart/items/:stock_id", posHandler.SetQuantity)
	pos.DELETE("/cart/items/:stock_id", posHandler.RemoveItem)
	pos.POST("/checkout", posHandler.Checkout)
	pos.GET("/stocks", posHandler.ListStocks)
	v1.GET("/stocks/by-shop/:shop_id", posHandler.ListStocksByShop,
		guard(middleware.Requirement{Permission: domain.PermProcessSales}))

	// Shop management.
	shops := v1.Group("/shops", guard(middleware.Requirement{Permission: domain.PermManageShops}))
	shops.POST("", shopHandler.Create)
	shops.GET("", shopHandler.List)
	shops.GET("/:id", shopHandler.Get)
	shops.PUT("/:id", shopHandler.Update)
	shops.DELETE("/:id", shopHandler.Delete)

	// Stock intake and adjustment.
	stocks := v1.Group("/stocks", guard(middleware.Requirement{Permission: domain.PermManageStock}))
	stocks.POST("", stockHandler.Add)
	stocks.PUT("/:id", stockHandler.Update)

	// Payment methods: any authenticated caller may list; mutations are
	// reserved for the super admin.
	v1.GET("/payment-methods", billingHandler.ListPaymentMethods)
	superAdmin := guard(middleware.Requirement{Role: domain.RoleSuperAdmin})
	v1.POST("/payment-methods", billingHandler.CreatePaymentMethod, superAdmin)
	v1.PUT("/payment-methods/:id", billingHandler.UpdatePaymentMethod, superAdmin)
	v1.DELETE("/payment-methods/:id", billingHandler.DeletePaymentMethod, superAdmin)

	// Subscription administration.
	plans := v1.Group("/plans", superAdmin)
	plans.GET("", billingHandler.ListPlans)
	plans.POST("", billingHandler.CreatePlan)
	plans.PUT("/:id", billingHandler.UpdatePlan)

	subs := v1.Group("/subscriptions", superAdmin)
	subs.GET("", billingHandler.ListSubscriptions)
	subs.POST("", billingHandler.CreateSubscription)
	subs.PATCH("/:id/status", billingHandler.UpdateSubscriptionStatus)

	return e
}
