package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func AlbumRouters(router *gin.Engine, container *configuration.Container) {
	albumRoute := router.Group("/api/albums")
	{
		albumRoute.GET("", container.AlbumHandler.GetAllAlbums)
		albumRoute.GET("/:albumId", container.AlbumHandler.GetAlbumByID)
	}
}
