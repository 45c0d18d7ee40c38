package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/service"
)

type SongHandler interface {
	GetAllSongs(c *gin.Context)
	GetFeaturedSongs(c *gin.Context)
	GetMadeForYouSongs(c *gin.Context)
	GetTrendingSongs(c *gin.Context)
}

type songHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

func NewSongHandler(catalog service.CatalogService, logger *zap.Logger) SongHandler {
	return &songHandler{catalog: catalog, logger: logger}
}

func (h *songHandler) GetAllSongs(c *gin.Context) {
	songs, err := h.catalog.AllSongs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *songHandler) GetFeaturedSongs(c *gin.Context) {
	songs, err := h.catalog.FeaturedSongs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *songHandler) GetMadeForYouSongs(c *gin.Context) {
	songs, err := h.catalog.MadeForYouSongs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *songHandler) GetTrendingSongs(c *gin.Context) {
	songs, err := h.catalog.TrendingSongs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}
