package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ubuygold/folioapi/internal/admin"
	"github.com/ubuygold/folioapi/internal/api"
	"github.com/ubuygold/folioapi/internal/config"
	"github.com/ubuygold/folioapi/internal/db"
	"github.com/ubuygold/folioapi/internal/logger"
	"github.com/ubuygold/folioapi/internal/middleware"
	"github.com/ubuygold/folioapi/internal/scheduler"
	"github.com/ubuygold/folioapi/internal/usage"

	"github.com/gin-gonic/gin"
)

// newRouter wires the middleware stack and both route trees.
func newRouter(cfg *config.Config, dbService db.Service, recorder *usage.Recorder, log *slog.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	api.SetupRoutes(router, dbService, recorder, cfg, log)
	admin.SetupRoutes(router, dbService, cfg, log)
	return router
}

func main() {
	// Load configuration
	cfg, warnings, err := config.LoadConfig("config.yaml")
	if err != nil {
		// Use a temporary logger for startup errors
		slog.Error("Error loading configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(cfg.Debug, cfg.LogLevel)
	log.Info("Logger initialized", "debug_mode", cfg.Debug, "level", cfg.LogLevel)
	for _, warning := range warnings {
		log.Warn(warning)
	}

	// Initialize database
	dbService, err := db.NewService(cfg.Database)
	if err != nil {
		log.Error("Error initializing database", "error", err)
		os.Exit(1)
	}
	defer dbService.Close()
	log.Info("Database initialized", "type", cfg.Database.Type)

	recorder := usage.NewRecorder(dbService, cfg.Usage.QueueSize, log)

	// Start the scheduler
	s := scheduler.NewScheduler(dbService, cfg, log)
	if err := s.Start(); err != nil {
		log.Error("Error starting scheduler", "error", err)
		os.Exit(1)
	}
	log.Info("Scheduler started", "usage_prune_spec", cfg.Scheduler.UsagePruneSpec)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, dbService, recorder, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	// In-flight requests are done; flush their usage records before the database closes.
	s.Stop()
	recorder.Close()

	log.Info("Server exiting")
}
