package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/exam-analytics-api/api/swagger"
	"github.com/noah-isme/exam-analytics-api/internal/dataset"
	"github.com/noah-isme/exam-analytics-api/internal/handler"
	"github.com/noah-isme/exam-analytics-api/internal/middleware"
	"github.com/noah-isme/exam-analytics-api/internal/repository"
	"github.com/noah-isme/exam-analytics-api/internal/service"
	"github.com/noah-isme/exam-analytics-api/pkg/cache"
	"github.com/noah-isme/exam-analytics-api/pkg/config"
	"github.com/noah-isme/exam-analytics-api/pkg/database"
	"github.com/noah-isme/exam-analytics-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/exam-analytics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/exam-analytics-api/pkg/middleware/requestid"
)

// @title Exam Analytics API
// @version 1.0.0
// @description REST API for academic exam result statistics
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	metricsSvc := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Stats.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, statistics caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	var repo service.CacheRepository
	if cacheRepo != nil {
		repo = cacheRepo
	}
	cacheSvc := service.NewCacheService(repo, metricsSvc, cfg.Stats.CacheTTL, logr, cfg.Stats.CacheEnabled)

	source, err := buildSource(cfg, logr)
	if err != nil {
		logr.Fatal("failed to initialise dataset source", zap.Error(err))
	}
	store := dataset.NewStore(source, logr)

	dataSvc := service.NewDatasetService(store, cacheSvc, metricsSvc, logr)
	statsSvc := service.NewStatsService(dataSvc, cacheSvc, cfg.Stats.CacheTTL, logr)
	subjectSvc := service.NewSubjectService(dataSvc, cacheSvc, cfg.Stats.CacheTTL, logr)
	studentSvc := service.NewStudentService(dataSvc, cacheSvc, cfg.Stats.CacheTTL, logr)
	analyticsSvc := service.NewAnalyticsService(dataSvc, cacheSvc, metricsSvc, cfg.Stats.CacheTTL, logr)
	authSvc := service.NewAuthService(cfg.Auth, nil, logr)
	exportSvc := service.NewExportService(statsSvc, analyticsSvc, logr)

	kpiHandler := handler.NewKPIHandler(statsSvc, dataSvc)
	departmentHandler := handler.NewDepartmentHandler(statsSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	datasetHandler := handler.NewDatasetHandler(dataSvc, logr)
	exportHandler := handler.NewExportHandler(exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	var pinger interface{ Ping(context.Context) error }
	if cacheRepo != nil {
		pinger = cacheRepo
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, dataSvc, pinger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		kpis := api.Group("/kpis")
		kpis.GET("/overall", kpiHandler.Overall)
		kpis.GET("/yearly", kpiHandler.Yearly)
		kpis.GET("/department-stats", kpiHandler.DepartmentStats)
		kpis.GET("/filters", kpiHandler.Filters)

		departments := api.Group("/departments")
		departments.GET("", departmentHandler.List)
		departments.GET("/leaderboard", departmentHandler.Leaderboard)
		departments.GET("/:name", departmentHandler.Detail)
		departments.GET("/:name/subjects", departmentHandler.Subjects)

		subjects := api.Group("/subjects")
		subjects.GET("", subjectHandler.List)
		subjects.GET("/search", subjectHandler.Search)
		subjects.GET("/difficulty-rank", subjectHandler.DifficultyRank)
		subjects.GET("/pass-rates", subjectHandler.PassRates)

		students := api.Group("/students")
		students.GET("/search", studentHandler.Search)
		students.POST("/batch", studentHandler.Batch)
		students.GET("/:id", studentHandler.Profile)
		students.GET("/:id/performance", studentHandler.Performance)
		students.GET("/:id/results", studentHandler.Results)

		analytics := api.Group("/analytics")
		analytics.POST("/filter", analyticsHandler.Filter)
		analytics.GET("/comparison", analyticsHandler.Comparison)
		analytics.GET("/trends", analyticsHandler.Trends)
		analytics.GET("/trend-line", analyticsHandler.TrendLine)
		analytics.GET("/report", analyticsHandler.Report)
		analytics.GET("/system", analyticsHandler.System)

		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("", middleware.JWT(authSvc))
		protected.POST("/dataset/reload", datasetHandler.Reload)
		if cfg.Export.Enabled {
			protected.GET("/export/departments.csv", exportHandler.DepartmentsCSV)
			protected.GET("/export/report.pdf", exportHandler.ReportPDF)
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("data_source", cfg.Data.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildSource selects the dataset backend from configuration.
func buildSource(cfg *config.Config, logr *zap.Logger) (dataset.Source, error) {
	switch cfg.Data.Source {
	case config.SourceExcel:
		return repository.NewExcelSource(cfg.Data.Path, logr), nil
	case config.SourcePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresSource(db, cfg.Data.Table, logr), nil
	case config.SourceCSV:
		return repository.NewCSVSource(cfg.Data.Path, cfg.Data.RemoteURL, logr), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
