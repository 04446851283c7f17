package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListModels godoc
// @Summary      List configured models
// @Description  Returns the model identifier served in each classifier slot
// @Tags         classification
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.analyzer.Models()})
}
