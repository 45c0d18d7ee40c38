package approuters

import (
	"github.com/gin-gonic/gin"

	"Tunedeck/internal/configuration"
)

func SongRouters(router *gin.Engine, container *configuration.Container, requireUser, requireAdmin gin.HandlerFunc) {
	songRoute := router.Group("/api/songs")
	{
		// the full catalog listing is an admin dashboard view
		songRoute.GET("", requireUser, requireAdmin, container.SongHandler.GetAllSongs)
		songRoute.GET("/featured", container.SongHandler.GetFeaturedSongs)
		songRoute.GET("/made-for-you", container.SongHandler.GetMadeForYouSongs)
		songRoute.GET("/trending", container.SongHandler.GetTrendingSongs)
	}
}
