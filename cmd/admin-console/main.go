package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/macquiz/admin-console-api/api/swagger"
	"github.com/macquiz/admin-console-api/internal/directory"
	"github.com/macquiz/admin-console-api/internal/directoryapi"
	"github.com/macquiz/admin-console-api/internal/handler"
	"github.com/macquiz/admin-console-api/internal/middleware"
	"github.com/macquiz/admin-console-api/internal/repository"
	"github.com/macquiz/admin-console-api/internal/service"
	"github.com/macquiz/admin-console-api/pkg/cache"
	"github.com/macquiz/admin-console-api/pkg/config"
	"github.com/macquiz/admin-console-api/pkg/database"
	"github.com/macquiz/admin-console-api/pkg/logger"
	corsmiddleware "github.com/macquiz/admin-console-api/pkg/middleware/cors"
	reqidmiddleware "github.com/macquiz/admin-console-api/pkg/middleware/requestid"
)

// @title Admin Console API
// @version 1.0.0
// @description Provisioning console for platform user accounts
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Optional backing stores. Both repositories degrade gracefully around a
	// nil connection: no Postgres means no audit trail, no Redis means no
	// lookup cache.
	var db *sqlx.DB
	if cfg.Audit.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close() //nolint:errcheck
	}
	auditRepo := repository.NewAuditRepository(db)

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, lookup caching disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsService := service.NewMetricsService()

	apiClient := directoryapi.New(cfg.Directory, logr)
	dir := directory.New(apiClient, metricsService, logr)

	tokenService := service.NewTokenService(cfg.JWT, logr)

	provisionService := service.NewProvisionService(apiClient, dir, auditRepo, cacheRepo, metricsService, logr)
	lookupService := service.NewLookupService(dir, cacheRepo, cfg.Lookup, logr, nil, nil)

	userHandler := handler.NewUserHandler(provisionService)
	lookupHandler := handler.NewLookupHandler(lookupService)
	credentialHandler := handler.NewCredentialHandler()
	reportHandler := handler.NewReportHandler()
	auditHandler := handler.NewAuditHandler(auditRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group(cfg.APIPrefix)
	v1.Use(middleware.JWT(tokenService), middleware.RequireAdmin())
	{
		v1.GET("/users", userHandler.List)
		v1.POST("/users", userHandler.Create)
		v1.POST("/users/refresh", userHandler.Refresh)
		v1.PUT("/users/:id", userHandler.Update)
		v1.DELETE("/users/:id", userHandler.Delete)

		v1.POST("/credentials/assess", credentialHandler.Assess)
		v1.POST("/credentials/generate", credentialHandler.Generate)
		v1.GET("/email/domains", credentialHandler.Domains)

		v1.GET("/lookup/:role", lookupHandler.List)
		v1.GET("/lookup/:role/export", lookupHandler.Export)

		v1.GET("/reports/semesters", reportHandler.Semesters)
		v1.GET("/reports/class-years", reportHandler.ClassYears)

		v1.GET("/audit", auditHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
