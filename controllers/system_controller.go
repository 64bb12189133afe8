package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopping-cart/docs"
	"shopping-cart/models"
)

type SystemController struct {
	startedAt time.Time
	now       func() time.Time
}

func NewSystemController() *SystemController {
	return &SystemController{startedAt: time.Now(), now: time.Now}
}

func availableRoutes() map[string]string {
	return map[string]string{
		"documentation": "/swagger/index.html",
		"health":        "/health",
		"cart":          "/api/cart",
	}
}

// @Summary Service info
// @Tags System
// @Produce json
// @Success 200 {object} models.ServiceInfo
// @Router / [get]
func (ctrl *SystemController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, models.ServiceInfo{
		Message:       docs.SwaggerInfo.Title,
		Version:       docs.SwaggerInfo.Version,
		Description:   docs.SwaggerInfo.Description,
		Documentation: "/swagger/index.html",
		Endpoints:     map[string]string{"cart": "/api/cart"},
	})
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (ctrl *SystemController) Health(c *gin.Context) {
	now := ctrl.now()
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(ctrl.startedAt).Seconds(),
	})
}

func (ctrl *SystemController) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.RouteNotFoundResponse{
		Success:         false,
		Error:           "Route not found",
		Message:         fmt.Sprintf("The route %s was not found", c.Request.URL.Path),
		AvailableRoutes: availableRoutes(),
	})
}
