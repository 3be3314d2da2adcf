package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/classconnect/classconnect-api/internal/service"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: svc}
}

// Expose serves the Prometheus exposition format.
func (h *MetricsHandler) Expose(c *gin.Context) {
	h.service.Handler().ServeHTTP(c.Writer, c.Request)
}
