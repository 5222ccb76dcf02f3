package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formsync/formsync-api/config"
	"github.com/formsync/formsync-api/internal/handlers"
	"github.com/formsync/formsync-api/internal/middleware"
	"github.com/formsync/formsync-api/internal/services"
	"github.com/formsync/formsync-api/internal/storage"
	"github.com/formsync/formsync-api/pkg/httpclient"
	"github.com/formsync/formsync-api/pkg/logger"
	"github.com/formsync/formsync-api/pkg/metrics"
	"github.com/formsync/formsync-api/pkg/monday"
	"github.com/formsync/formsync-api/pkg/profiling"
	"github.com/formsync/formsync-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting FormSync API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.AlloyEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(profiling.Config{
		Enabled:               cfg.Profiling.Enabled,
		Endpoint:              cfg.Profiling.Endpoint,
		AppName:               cfg.Profiling.AppName,
		SampleTypes:           cfg.Profiling.SampleTypes,
		UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
	}, cfg.Observability.ServiceName, cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion, cfg.Observability.ServiceInstanceID, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize stores
	configStore := storage.NewConfigStore(cfg.Storage.ConfigPath)
	formStore, err := storage.NewFormStore(cfg.Storage.FormsDir)
	if err != nil {
		logger.Fatal("Failed to initialize form storage", zap.Error(err))
	}

	// Ensure a configuration file exists so the admin page always has
	// something to edit
	if _, err := configStore.Load(); err != nil {
		logger.Fatal("Failed to load form configuration", zap.Error(err))
	}

	// Initialize HTTP client for external API calls
	httpClient := httpclient.NewStandardClient()

	// Initialize board API client
	boardClient, err := monday.NewClient(cfg.Monday.APIToken, cfg.Monday.Endpoint, httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize board API client", zap.Error(err))
	}

	// Initialize services
	formService := services.NewFormService(formStore)
	syncWorker := services.NewSyncWorker(configStore, boardClient)
	submissionService := services.NewSubmissionService(formStore, syncWorker)
	webhookService := services.NewWebhookService(configStore, formStore, boardClient,
		cfg.Cache.ColumnTTLSeconds, cfg.Server.BaseURL)

	// Initialize handlers
	configHandler := handlers.NewConfigHandler(configStore)
	formsHandler := handlers.NewFormsHandler(formService)
	formPageHandler := handlers.NewFormPageHandler(formService, submissionService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	healthHandler := handlers.NewHealthHandler(func() bool {
		_, err := os.Stat(cfg.Storage.FormsDir)
		return err == nil
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.SetFuncMap(template.FuncMap{
		// seq feeds the rating scale range in form.html
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	})
	router.LoadHTMLGlob("templates/*")

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	// Allow localhost in development
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5000", "http://127.0.0.1:5000")
	}

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	submitRateLimiter := middleware.NewRateLimiter(5, 10)     // 5 req/sec, burst of 10 (prevent spam)
	webhookRateLimiter := middleware.NewRateLimiter(20, 40)   // 20 req/sec, burst of 40

	// Operator pages
	router.GET("/", generalRateLimiter.Middleware(), handlers.IndexPage)
	router.GET("/admin", generalRateLimiter.Middleware(), configHandler.AdminPage)

	// Configuration and form management API
	api := router.Group("/api")
	api.GET("/config", generalRateLimiter.Middleware(), configHandler.GetConfig)
	api.POST("/config", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), configHandler.SaveConfig)
	api.GET("/forms", generalRateLimiter.Middleware(), formsHandler.ListForms)
	api.DELETE("/forms/:id", generalRateLimiter.Middleware(), formsHandler.DeleteForm)

	// Utility endpoints (operational)
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Respondent-facing form pages
	router.GET("/form/:id", generalRateLimiter.Middleware(), formPageHandler.DisplayForm)
	router.POST("/submit_form/:id", submitRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), formPageHandler.SubmitForm)

	// Board webhook intake
	router.POST("/webhook/:formType", webhookRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), webhookHandler.HandleBoardEvent)

	// Create HTTP server
	// SECURITY: Bind to all interfaces for Docker Compose networking
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
