package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopping-cart/models"
	"shopping-cart/utils"
)

func Recovery(log *utils.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("panic recovered", "path", c.Request.URL.Path, "request_id", GetRequestID(c), "panic", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "Internal server error",
			Message: fmt.Sprint(recovered),
		})
	})
}
