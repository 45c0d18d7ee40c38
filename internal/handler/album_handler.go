package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/service"
)

type AlbumHandler interface {
	GetAllAlbums(c *gin.Context)
	GetAlbumByID(c *gin.Context)
}

type albumHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

func NewAlbumHandler(catalog service.CatalogService, logger *zap.Logger) AlbumHandler {
	return &albumHandler{catalog: catalog, logger: logger}
}

func (h *albumHandler) GetAllAlbums(c *gin.Context) {
	albums, err := h.catalog.Albums(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *albumHandler) GetAlbumByID(c *gin.Context) {
	album, err := h.catalog.AlbumByID(c.Request.Context(), c.Param("albumId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, album)
}
