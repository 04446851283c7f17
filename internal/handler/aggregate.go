package handler

import (
	"net/http"

	"chart-signal/internal/domain"
	"chart-signal/internal/recommend"

	"github.com/gin-gonic/gin"
)

type aggregateRequest struct {
	Labels []string `json:"labels"`
}

// Aggregate godoc
// @Summary      Score model labels
// @Description  Applies the direction tables to four model labels without running any model
// @Tags         classification
// @Accept       json
// @Produce      json
// @Param        request  body  aggregateRequest  true  "Labels in model slot order"
// @Success      200  {object}  recommend.Evaluation
// @Failure      400  {object}  map[string]string
// @Router       /api/aggregate [post]
func (h *Handler) Aggregate(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.aggregate")
	defer span.End()

	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Labels) != domain.ModelCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly four labels are required"})
		return
	}

	c.JSON(http.StatusOK, recommend.Evaluate(req.Labels))
}
