package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func AuthRouters(router *gin.Engine, container *configuration.Container) {
	authRoute := router.Group("/api/auth")
	{
		authRoute.POST("/callback", container.AuthHandler.AuthCallback)
	}
}
