package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func StatRouters(router *gin.Engine, container *configuration.Container, requireUser, requireAdmin gin.HandlerFunc) {
	statRoute := router.Group("/api/stats", requireUser, requireAdmin)
	{
		statRoute.GET("", container.StatHandler.GetStats)
	}
}
