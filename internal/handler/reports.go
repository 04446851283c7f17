package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"chart-signal/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetReport godoc
// @Summary      Get the latest report for an image
// @Description  Looks up a classification report by the sha256 digest of the uploaded image
// @Tags         reports
// @Produce      json
// @Param        digest  path  string  true  "Hex sha256 of the image bytes"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  map[string]string
// @Router       /api/reports/{digest} [get]
func (h *Handler) GetReport(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-report")
	defer span.End()

	digest := strings.ToLower(strings.TrimSpace(c.Param("digest")))
	span.SetAttributes(attribute.String("report.digest", digest))

	report, err := h.analyzer.GetReport(ctx, digest)
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListReports godoc
// @Summary      List recent reports
// @Description  Returns the most recent classification reports from history
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Number of reports (default 20, max 100)"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-reports")
	defer span.End()

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	reports, err := h.analyzer.ListReports(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
