package route

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bassista/bookpop/internal/app"
)

// SetupRoutes registers the health probe and all API routes.
func SetupRoutes(r *gin.Engine, appCtx *app.App) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	api := r.Group("/api")
	NewBookRouter(appCtx, api)
}
