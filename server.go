package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/factory_backend/config"
	"github.com/mmdatafocus/factory_backend/handlers"
	"github.com/mmdatafocus/factory_backend/middlewares"
	"github.com/mmdatafocus/factory_backend/models"
	"github.com/mmdatafocus/factory_backend/models/reports"
	"github.com/sirupsen/logrus"
)

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func corsConfig(settings *config.Settings) cors.Config {
	corsConfig := cors.DefaultConfig()
	// In production only the configured origins are allowed; an empty list denies all.
	if settings.IsProduction() {
		if len(settings.CorsAllowedOrigins) > 0 {
			corsConfig.AllowOrigins = settings.CorsAllowedOrigins
		} else {
			corsConfig.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", middlewares.CorrelationIdHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", middlewares.CorrelationIdHeader)
	corsConfig.AllowCredentials = true
	return corsConfig
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}
	config.SetLogLevel(settings.LogLevel)
	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// The dashboard is installed once the database is connected; until then app endpoints return 503.
	dashboardHandler := handlers.NewDashboardHandler(nil, settings.DashboardTimeout())

	r := gin.New()
	r.Use(middlewares.RequestContextMiddleware())
	r.Use(middlewares.ReadinessMiddleware(func() bool {
		return config.GetDB() != nil && dashboardHandler.Ready()
	}))
	r.Use(cors.New(corsConfig(settings)))
	if settings.RateLimitEnabled {
		rateLimiter := middlewares.NewRateLimiter(config.GetRedisDB, settings.RateLimitMaxRequests, settings.RateLimitWindow())
		r.Use(rateLimiter.Middleware())
	}
	r.Use(middlewares.ErrorLoggerMiddleware(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	dashboardHandler.Register(r)
	r.NoRoute(customNotFoundHandler)

	// Start listening immediately (Cloud Run startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry(settings)
	config.ConnectRedisWithRetry(sigCtx, settings)

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can lock tables; large deployments run it as a separate job.
	if !settings.SkipMigrations {
		if err := models.MigrateTable(db); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Fatal(err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	dashboard := reports.NewDashboard(reports.NewGormSource(db), logger, settings.Location())
	dashboard.SetSlowThreshold(time.Duration(settings.ReportSlowMs) * time.Millisecond)
	if settings.ReportCacheEnabled {
		dashboard.EnableCache(settings.ReportCacheTTL())
	}
	dashboardHandler.SetDashboard(dashboard)

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("serving dashboard on http://localhost:", settings.Port, "/api/dashboard")

	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
	config.CloseRedis()
}
