package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoply/catalog-system/internal/api/handler"
	"github.com/shoply/catalog-system/internal/api/middleware"
	"github.com/shoply/catalog-system/internal/core/service"
	mongodb "github.com/shoply/catalog-system/internal/infrastructure/db/mongo"
	redisdb "github.com/shoply/catalog-system/internal/infrastructure/db/redis"
	"github.com/shoply/catalog-system/internal/infrastructure/storage"
	"github.com/shoply/catalog-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All collaborators are constructed here and injected; nothing is package
// global.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images *storage.LocalStore, renderer echo.Renderer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.Window)

	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, cfg.TokenTTL, cfg.Login.MaxAttempts, log)
	catalogService := service.NewCatalogService(productRepo, images, log)

	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL)
	productHandler := handler.NewProductHandler(catalogService)
	pageHandler := handler.NewPageHandler(catalogService)

	requireAuth := middleware.RequireAuth(authService, userRepo, log)

	// --- Auth routes ---
	e.GET("/signup", authHandler.SignupPage)
	e.POST("/signup", authHandler.Signup)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Pages (auth required) ---
	e.GET("/", pageHandler.UploadPage, requireAuth)
	e.GET("/products", pageHandler.ProductsPage, requireAuth)
	e.GET("/products/:id", pageHandler.ProductPage, requireAuth)
	e.GET("/edit/:id", pageHandler.EditPage, requireAuth)

	// --- Mutations (auth required) ---
	e.POST("/upload", productHandler.Upload, requireAuth)
	e.POST("/edit/:id", productHandler.Edit, requireAuth)
	e.POST("/delete/:id", productHandler.Delete, requireAuth)

	// --- Public read-only JSON API ---
	e.GET("/api/products", productHandler.ListJSON)
	e.GET("/api/products/:id", productHandler.GetJSON)

	// --- Uploaded images (served from the local store) ---
	e.Static(storage.URLPrefix, images.Dir())

	// --- Observability & docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
