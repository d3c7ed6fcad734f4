package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devilal/catalog-api/docs" // swagger spec registration
	"github.com/devilal/catalog-api/internal/api/handler"
	"github.com/devilal/catalog-api/internal/api/middleware"
	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/service"
	mongodb "github.com/devilal/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devilal/catalog-api/internal/infrastructure/db/redis"
	"github.com/devilal/catalog-api/internal/infrastructure/http/handlers"
	"github.com/devilal/catalog-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	metaCache := redisdb.NewMetaCache(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	productService := service.NewProductService(productRepo, metaCache, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	requireAuth := middleware.Auth(tokenService)
	optionalAuth := middleware.OptionalAuth(tokenService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/profile", authHandler.UpdateProfile, requireAuth)
	auth.PUT("/password", authHandler.ChangePassword, requireAuth)
	auth.POST("/logout", authHandler.Logout, requireAuth)

	// --- Catalog routes ---
	products := v1.Group("/products")
	products.GET("", productHandler.List, optionalAuth)
	products.GET("/meta/categories", productHandler.Categories)
	products.GET("/meta/brands", productHandler.Brands)
	products.GET("/:id", productHandler.Get, optionalAuth)
	products.POST("", productHandler.Create, requireAuth, adminOnly)
	products.PUT("/:id", productHandler.Update, requireAuth, adminOnly)
	products.DELETE("/:id", productHandler.Delete, requireAuth, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
