package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func UserRouters(router *gin.Engine, container *configuration.Container, requireUser gin.HandlerFunc) {
	userRoute := router.Group("/api/users", requireUser)
	{
		userRoute.GET("", container.UserHandler.GetAllUsers)
		userRoute.GET("/messages/:userId", container.UserHandler.GetMessages)
		userRoute.POST("/messages", container.UserHandler.SendMessage)
	}
}
