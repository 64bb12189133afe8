package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"shopping-cart/config"
	_ "shopping-cart/docs"
	"shopping-cart/repositories"
	"shopping-cart/routes"
	"shopping-cart/services"
	"shopping-cart/utils"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the router once per instance. The cart lives as long as
// the warm instance does.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := utils.NewLogger("production", cfg.LogLevel)
		if err != nil {
			logger = utils.NewNopLogger()
		}

		redisClient := config.ConnectRedis(cfg, logger)

		router = routes.NewRouter(routes.Dependencies{
			Cart:       services.NewCartService(),
			Cache:      repositories.NewCartCache(redisClient, cfg.CartCacheTTL),
			Logger:     logger,
			OriginURL:  cfg.OriginURL,
			Production: true,
		})
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
