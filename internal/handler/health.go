package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns the health status of the service and the number of configured models
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	models := 0
	if h.analyzer != nil {
		models = len(h.analyzer.Models())
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "models": models})
}
