package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/lifx-mcp/pkg/api/types"
)

// ConfigChecker reports whether the LIFX credential is present.
type ConfigChecker interface {
	CheckConfig() error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	checker ConfigChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(checker ConfigChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and whether a LIFX token is configured
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "LIFX token is not configured"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := types.HealthResponse{
		Status:     "healthy",
		Configured: true,
		Timestamp:  time.Now(),
	}
	httpStatus := http.StatusOK

	if err := h.checker.CheckConfig(); err != nil {
		resp.Status = "degraded"
		resp.Configured = false
		resp.Message = err.Error()
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, resp)
}
