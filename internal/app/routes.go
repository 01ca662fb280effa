package app

import (
	"github.com/gin-gonic/gin"
	"github.com/typeless-cms/core/internal/config"
	"github.com/typeless-cms/core/internal/middleware"
	"github.com/typeless-cms/core/internal/modules/accesslog"
	"github.com/typeless-cms/core/internal/modules/auth"
	"github.com/typeless-cms/core/internal/modules/billing"
	"github.com/typeless-cms/core/internal/modules/entry"
	"github.com/typeless-cms/core/internal/modules/export"
	"github.com/typeless-cms/core/internal/modules/health"
	"github.com/typeless-cms/core/internal/modules/helper"
	"github.com/typeless-cms/core/internal/modules/media"
	"github.com/typeless-cms/core/internal/modules/publicapi"
	"github.com/typeless-cms/core/internal/modules/schema"
	"github.com/typeless-cms/core/internal/modules/workspace"
	"github.com/typeless-cms/core/internal/pkg/effect"
	pkgredis "github.com/typeless-cms/core/internal/pkg/redis"
	"github.com/typeless-cms/core/internal/pkg/response"
	"go.uber.org/zap"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and replay protection run on every route.
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	effects := effect.NewRunner(a.logger)

	// Shared services
	wsSvc := workspace.NewService(db)
	schemaSvc := schema.NewService(db, wsSvc)
	entrySvc := entry.NewService(db, wsSvc)
	logSvc := accesslog.NewService(db, wsSvc, effects)
	authSvc := auth.NewService(db, a.resolver, wsSvc, a.logger)
	mediaSvc := media.NewService(db, wsSvc, a.storage, a.tasks,
		a.cfg.Storage.Folder, a.cfg.Media.MaxUploadSizeMB)
	billingSvc := billing.NewService(db, a.logger)
	exportSvc, err := export.NewService(db, wsSvc, a.cfg.Export, a.logger)
	if err != nil {
		// Export stays unavailable; everything else should still serve.
		a.logger.Warn("export storage unavailable", zap.Error(err))
		exportSvc, _ = export.NewService(db, wsSvc, config.ExportConfig{}, a.logger)
	}

	root := r.Group("")

	// Authenticated dashboard surface
	auth.NewHandler(authSvc, a.cfg.URLs.Dashboard).RegisterRoutes(root, authMW)
	workspace.NewHandler(wsSvc).RegisterRoutes(root, authMW)
	schema.NewHandler(schemaSvc).RegisterRoutes(root, authMW)
	entry.NewHandler(entrySvc).RegisterRoutes(root, authMW)
	accesslog.NewHandler(logSvc).RegisterRoutes(root, authMW)
	media.NewHandler(mediaSvc).RegisterRoutes(root, authMW)
	export.NewHandler(exportSvc).RegisterRoutes(root, authMW)
	helper.NewHandler().RegisterRoutes(root, authMW)

	// Unauthenticated surface
	billing.NewHandler(billingSvc, a.cfg.Stripe.WebhookSecret).RegisterRoutes(root)
	health.NewHandler(db).RegisterRoutes(root)

	// Slug-addressed public read API
	publicSvc := publicapi.NewService(db, entrySvc.Resolver())
	publicapi.NewHandler(publicSvc, logSvc).RegisterRoutes(root)
}
