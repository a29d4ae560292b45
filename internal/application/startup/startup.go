// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BharatAdaptive/munimji-go/internal/application/container"
	"github.com/BharatAdaptive/munimji-go/internal/infrastructure/observability/logging"
	"github.com/BharatAdaptive/munimji-go/internal/presentation/http/server"
	"github.com/BharatAdaptive/munimji-go/pkg/config"
)

// Initialize performs the complete startup sequence and blocks until
// shutdown completes.
func Initialize() error {
	setupGinMode()

	start := time.Now().UTC()

	log.Println("\033[32m" + `
  __  __             _             _ _
 |  \/  |_   _ _ __ (_)_ __ ___   | (_)
 | |\/| | | | | '_ \| | '_ ` + "`" + ` _ \  | | |
 | |  | | |_| | | | | | | | | | |_| | |
 |_|  |_|\__,_|_| |_|_|_| |_| |_(_)_|_|
` + "\033[97m" + `
  Bharat context-adaptive personalization engine
` + "\033[0m")

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Dependency injection container (journal DB, store, catalog, providers)
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(logger)
	if err != nil {
		return fmt.Errorf("container initialization failed: %w", err)
	}
	defer appContainer.Close()
	logger.Startup().Info("Container initialization complete")

	// Step 3: Ops pulse broadcaster
	go appContainer.PulseBroadcaster.Run()
	logger.Startup().Info("Ops pulse broadcaster started", "interval", config.PulseInterval)

	// Step 4: HTTP server
	startServerTime := time.Now()
	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", config.Port, "duration", time.Since(startServerTime))

	// Step 5: Graceful shutdown wiring
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Stopping ops pulse broadcaster...")
	appContainer.PulseBroadcaster.Shutdown()

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupGinMode configures the Gin runtime mode before any engine is built
func setupGinMode() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}
