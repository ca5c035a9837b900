package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/text-insights/internal/domain/insights"
)

// Handler wires the HTTP transport to the insights pipeline.
type Handler struct {
	svc    insights.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc insights.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// Options returns the bounds of every control and the accepted n-gram labels.
func (h *Handler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Options())
}

// Generate runs the whole pipeline for a JSON request.
func (h *Handler) Generate(c *gin.Context) {
	req, ok := h.bindJSON(c)
	if !ok {
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromPipelineError(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

// Export runs the pipeline and answers with the plain text artifact as an attachment.
func (h *Handler) Export(c *gin.Context) {
	req, ok := h.bindJSON(c)
	if !ok {
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromPipelineError(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Export.FileName))
	c.Data(http.StatusOK, res.Export.MimeType+"; charset=utf-8", []byte(res.Export.Content))
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) bindJSON(c *gin.Context) (insights.Request, bool) {
	var req insights.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return insights.Request{}, false
	}
	return req, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
