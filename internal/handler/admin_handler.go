package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/service"
)

type AdminHandler interface {
	CheckAdmin(c *gin.Context)
	CreateSong(c *gin.Context)
	DeleteSong(c *gin.Context)
	CreateAlbum(c *gin.Context)
	DeleteAlbum(c *gin.Context)
}

type adminHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

func NewAdminHandler(catalog service.CatalogService, logger *zap.Logger) AdminHandler {
	return &adminHandler{catalog: catalog, logger: logger}
}

// CheckAdmin only ever runs behind the admin middleware, so reaching it
// means the caller is the administrator.
func (h *adminHandler) CheckAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"admin": true})
}

type createSongForm struct {
	Title    string `form:"title" binding:"required,notblank"`
	Artist   string `form:"artist" binding:"required,notblank"`
	Duration int    `form:"duration" binding:"required,gt=0"`
	AlbumID  string `form:"albumId"`
}

func (h *adminHandler) CreateSong(c *gin.Context) {
	var form createSongForm
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, h.logger, bindingError(err))
		return
	}

	audio, err := openUpload(c, "audioFile")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer audio.close()

	image, err := openUpload(c, "imageFile")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer image.close()

	song, err := h.catalog.CreateSong(c.Request.Context(), service.CreateSongInput{
		Title:    form.Title,
		Artist:   form.Artist,
		Duration: form.Duration,
		AlbumID:  form.AlbumID,
		Audio:    audio.file,
		Image:    image.file,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, song)
}

func (h *adminHandler) DeleteSong(c *gin.Context) {
	if err := h.catalog.DeleteSong(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Song deleted successfully"})
}

type createAlbumForm struct {
	Title       string `form:"title" binding:"required,notblank"`
	Artist      string `form:"artist" binding:"required,notblank"`
	ReleaseYear int    `form:"releaseYear" binding:"required"`
}

func (h *adminHandler) CreateAlbum(c *gin.Context) {
	var form createAlbumForm
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, h.logger, bindingError(err))
		return
	}

	image, err := openUpload(c, "imageFile")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer image.close()

	album, err := h.catalog.CreateAlbum(c.Request.Context(), service.CreateAlbumInput{
		Title:       form.Title,
		Artist:      form.Artist,
		ReleaseYear: form.ReleaseYear,
		Image:       image.file,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, album)
}

func (h *adminHandler) DeleteAlbum(c *gin.Context) {
	if err := h.catalog.DeleteAlbum(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Album deleted successfully"})
}

type upload struct {
	file   service.UploadFile
	closer multipart.File
}

func (u upload) close() {
	if u.closer != nil {
		_ = u.closer.Close()
	}
}

// openUpload pulls one file out of the multipart form, surfacing a
// field-naming validation error when it is missing.
func openUpload(c *gin.Context, field string) (upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return upload{}, apperr.Validation(field, "is required")
	}

	f, err := header.Open()
	if err != nil {
		return upload{}, apperr.Validation(field, "could not be read")
	}

	return upload{
		file: service.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        f,
		},
		closer: f,
	}, nil
}
