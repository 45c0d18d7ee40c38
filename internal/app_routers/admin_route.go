package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func AdminRouters(router *gin.Engine, container *configuration.Container, requireUser, requireAdmin gin.HandlerFunc) {
	adminRoute := router.Group("/api/admin", requireUser, requireAdmin)
	{
		adminRoute.GET("/check", container.AdminHandler.CheckAdmin)

		adminRoute.POST("/songs", container.AdminHandler.CreateSong)
		adminRoute.DELETE("/songs/:id", container.AdminHandler.DeleteSong)

		adminRoute.POST("/albums", container.AdminHandler.CreateAlbum)
		adminRoute.DELETE("/albums/:id", container.AdminHandler.DeleteAlbum)
	}
}
