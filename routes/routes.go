package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopping-cart/controllers"
	"shopping-cart/middleware"
	"shopping-cart/repositories"
	"shopping-cart/services"
	"shopping-cart/utils"
)

type Dependencies struct {
	Cart       *services.CartService
	Cache      repositories.CartCache
	Logger     *utils.Logger
	OriginURL  string
	Production bool
}

// NewRouter builds the engine with the full middleware chain.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.SecurityHeaders(deps.Production),
		middleware.CORSMiddleware(deps.OriginURL),
	)
	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cartCtrl := controllers.NewCartController(deps.Cart, deps.Cache, deps.Logger)
	systemCtrl := controllers.NewSystemController()

	router.GET("/", systemCtrl.Index)
	router.GET("/health", systemCtrl.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cart := router.Group("/api/cart")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.POST("", cartCtrl.AddProduct)
		cart.DELETE("/clear", cartCtrl.ClearCart)
		cart.GET("/:productId", cartCtrl.GetProduct)
		cart.PUT("/:productId", cartCtrl.UpdateProductQuantity)
		cart.DELETE("/:productId", cartCtrl.RemoveProduct)
	}

	router.NoRoute(systemCtrl.NotFound)
}
