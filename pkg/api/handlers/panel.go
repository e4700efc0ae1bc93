package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/lifx-mcp/pkg/panel"
)

// Panel handles GET /
func Panel(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", panel.HTML())
}
