package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/lifx-mcp/pkg/api/types"
	"github.com/urmzd/lifx-mcp/pkg/db"
)

const maxActivityLimit = 500

// ActivityHandler serves the tool invocation log
type ActivityHandler struct {
	store db.ToolCallStore
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(store db.ToolCallStore) *ActivityHandler {
	return &ActivityHandler{store: store}
}

// Recent handles GET /activity
// @Summary      Recent tool calls
// @Description  Returns recent tool invocations, newest first
// @Tags         activity
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries to return (1-500)"  default(50)
// @Success      200    {object}  types.ActivityResponse
// @Failure      400    {object}  types.ErrorResponse  "Invalid limit"
// @Failure      500    {object}  types.ErrorResponse  "Database error"
// @Router       /activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxActivityLimit {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be an integer between 1 and 500",
			})
			return
		}
		limit = n
	}

	calls, err := h.store.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
		return
	}

	entries := make([]types.ActivityEntry, 0, len(calls))
	for _, call := range calls {
		entries = append(entries, types.ActivityEntry{
			ID:         call.ID,
			Tool:       call.Tool,
			Selector:   call.Selector,
			Outcome:    call.Outcome,
			DurationMS: float64(call.Duration) / 1e6,
			CreatedAt:  call.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, types.ActivityResponse{
		Calls: entries,
		Count: len(entries),
	})
}
