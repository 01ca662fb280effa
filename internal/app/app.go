package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/typeless-cms/core/internal/config"
	"github.com/typeless-cms/core/internal/database"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/pkg/cloudstorage"
	"github.com/typeless-cms/core/internal/pkg/identity"
	jwtpkg "github.com/typeless-cms/core/internal/pkg/jwt"
	pkgredis "github.com/typeless-cms/core/internal/pkg/redis"
	"github.com/typeless-cms/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	logger   *zap.Logger
	cancel   context.CancelFunc
	tasks    *taskqueue.Service
	resolver *identity.Resolver
	storage  *cloudstorage.Client
}

// New initializes the application in dependency order: config, then
// database and Redis, then the external providers, then routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	applyRuntimeSettings(cfg, logger)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	resolver, err := identity.New(cfg.Identity.ProjectRef, cfg.Identity.APIKey, cfg.Identity.URL)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}

	storage, err := cloudstorage.New(cfg.Storage.CloudName, cfg.Storage.APIKey, cfg.Storage.APISecret)
	if err != nil {
		return nil, fmt.Errorf("storage provider: %w", err)
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	tasks := taskqueue.NewService(rc, logger)

	app := &App{
		cfg:      cfg,
		router:   router,
		db:       db,
		logger:   logger,
		cancel:   cancel,
		tasks:    tasks,
		resolver: resolver,
		storage:  storage,
	}
	app.registerRoutes(rc)

	go tasks.Run(ctx)

	return app, nil
}

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}
	if key := strings.TrimSpace(cfg.Stripe.SecretKey); key != "" {
		stripe.Key = key
	}
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines.
func (a *App) Shutdown() { a.cancel() }
