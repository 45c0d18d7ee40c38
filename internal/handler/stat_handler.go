package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/service"
)

type StatHandler interface {
	GetStats(c *gin.Context)
}

type statHandler struct {
	stats  service.StatService
	logger *zap.Logger
}

func NewStatHandler(stats service.StatService, logger *zap.Logger) StatHandler {
	return &statHandler{stats: stats, logger: logger}
}

func (h *statHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
