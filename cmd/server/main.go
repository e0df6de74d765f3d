package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trace-sample-service/internal/adapters/primary/http/handlers"
	"trace-sample-service/internal/adapters/primary/http/middleware"
	"trace-sample-service/internal/adapters/secondary/hasher"
	"trace-sample-service/internal/adapters/secondary/mysql"
	"trace-sample-service/internal/config"
	"trace-sample-service/internal/core/services"
	"trace-sample-service/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	telemetry.ConfigureLogger(log.StandardLogger(), cfg.Logger, os.Stdout)

	// Tracer provider
	tp, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry)
	if err != nil {
		log.Fatalf("init tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Errorf("shutdown tracer provider: %v", err)
		}
	}()

	// Database
	db, err := mysql.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := mysql.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("migrate db: %v", err)
	}
	log.Info("database connection established")

	// ============================================================================
	// Wiring
	// ============================================================================

	probeRepo := mysql.NewProbeRepository(db)
	probeRunRepo := mysql.NewProbeRunRepository(db)
	bcryptHasher := hasher.NewBcryptHasher(cfg.Probe.BcryptCost)

	probeSvc := services.NewProbeService(probeRepo, probeRunRepo, bcryptHasher, tp.Tracer(cfg.Telemetry.ServiceName))

	h := handlers.New(probeSvc, probeRepo)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		otelgin.Middleware(cfg.Telemetry.ServiceName, otelgin.WithTracerProvider(tp)),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(),
		gin.Recovery(),
	)

	h.RegisterProbes(router)
	h.RegisterRoutes(router.Group("/api/v1"))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Warnf("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Warn("server stopped")
}
