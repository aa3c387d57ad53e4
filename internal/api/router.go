package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raingor/anime-site-api/internal/api/handler"
	"github.com/raingor/anime-site-api/internal/api/middleware"
	"github.com/raingor/anime-site-api/internal/core/domain"
	"github.com/raingor/anime-site-api/internal/core/service"
	"github.com/raingor/anime-site-api/internal/infrastructure/config"
	"github.com/raingor/anime-site-api/internal/infrastructure/crypto"
	mongostore "github.com/raingor/anime-site-api/internal/infrastructure/db/mongo"
	redisstore "github.com/raingor/anime-site-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	requestValidator := handler.NewValidator()
	e.Validator = requestValidator

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("animesite"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := mongostore.NewRoleRepository(db)
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	viewCache := redisstore.NewViewCache(rdb)

	accountService := service.NewAccountService(userRepo, roleRepo, hasher, log)
	authService := service.NewAuthService(userRepo, hasher, cfg.JWTSecret, cfg.TokenTTL)

	authHandler := handler.NewAuthHandler(accountService, authService, requestValidator)
	userHandler := handler.NewUserHandler(accountService, viewCache)
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated account routes ---
	apiGroup := e.Group("/api", authMiddleware)
	apiGroup.GET("/profile", userHandler.Profile)
	apiGroup.GET("/users/:id", userHandler.Get)

	// --- Admin surface ---
	adminGroup := apiGroup.Group("/users", adminOnly)
	adminGroup.GET("", userHandler.List)
	adminGroup.GET("/count", userHandler.Count)
	adminGroup.PUT("/:id", userHandler.Update)
	adminGroup.DELETE("/:id", userHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
