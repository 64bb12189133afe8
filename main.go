package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shopping-cart/config"
	_ "shopping-cart/docs"
	"shopping-cart/repositories"
	"shopping-cart/routes"
	"shopping-cart/services"
	"shopping-cart/utils"
)

// @title Shopping Cart API
// @version 1.0.0
// @description REST API managing a single in-memory shopping cart.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:3000
// @BasePath /
func main() {
	cfg := config.LoadConfig()

	logger, err := utils.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.EnvFileLoaded {
		logger.Debug(".env file not found, using system environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	redisClient := config.ConnectRedis(cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	router := routes.NewRouter(routes.Dependencies{
		Cart:       services.NewCartService(),
		Cache:      repositories.NewCartCache(redisClient, cfg.CartCacheTTL),
		Logger:     logger,
		OriginURL:  cfg.OriginURL,
		Production: cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting",
			"port", cfg.Port,
			"env", cfg.AppEnv,
			"swagger", "http://localhost:"+cfg.Port+"/swagger/index.html",
			"api", "http://localhost:"+cfg.Port+"/api/cart",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shut down", "error", err)
	}
}
