package handler

import (
	"errors"
	"io"
	"net/http"

	"chart-signal/internal/chart"
	"chart-signal/internal/orchestrator"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// multipartOverhead covers boundaries and part headers around the image.
const multipartOverhead = 64 << 10

// Classify godoc
// @Summary      Classify a chart image
// @Description  Runs the uploaded chart through all four models and returns the per-model labels and the overall recommendation
// @Tags         classification
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Chart image (png, jpeg or gif)"
// @Success      200  {object}  domain.Report
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/classify [post]
func (h *Handler) Classify(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.classify")
	defer span.End()

	limit := h.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	file, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image upload"})
		return
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.Int("upload.bytes", len(raw)))

	upload, err := chart.Decode(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.analyzer.Analyze(ctx, upload)
	switch {
	case errors.Is(err, orchestrator.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, orchestrator.ErrNoImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
