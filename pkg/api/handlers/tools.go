package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/lifx-mcp/pkg/api/types"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

// ToolsHandler exposes the dispatcher over REST
type ToolsHandler struct {
	dispatcher *tools.Dispatcher
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(dispatcher *tools.Dispatcher) *ToolsHandler {
	return &ToolsHandler{dispatcher: dispatcher}
}

// ListTools handles GET /tools
// @Summary      List tools
// @Description  Returns every tool with its description and argument schema
// @Tags         tools
// @Produce      json
// @Success      200  {object}  types.ListToolsResponse
// @Router       /tools [get]
func (h *ToolsHandler) ListTools(c *gin.Context) {
	catalogue := h.dispatcher.Tools()

	result := make([]types.ToolInfo, 0, len(catalogue))
	for _, t := range catalogue {
		result = append(result, types.ToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Method:      t.Method,
			InputSchema: t.InputSchema(),
		})
	}

	c.JSON(http.StatusOK, types.ListToolsResponse{
		Tools: result,
		Count: len(result),
	})
}

// InvokeTool handles POST /tools/:name
// @Summary      Invoke a tool
// @Description  Runs one tool with a free-form argument object. The tool text is returned for failures too.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        name     path      string  true   "Tool name"
// @Param        request  body      object  false  "Tool arguments"
// @Success      200      {object}  types.ToolResultResponse
// @Failure      400      {object}  types.ToolResultResponse  "Invalid arguments"
// @Failure      404      {object}  types.ToolResultResponse  "Unknown tool"
// @Failure      429      {object}  types.ToolResultResponse  "LIFX rate limit reached"
// @Failure      502      {object}  types.ToolResultResponse  "LIFX API error"
// @Failure      503      {object}  types.ToolResultResponse  "LIFX token not configured"
// @Failure      504      {object}  types.ToolResultResponse  "LIFX API unreachable"
// @Router       /tools/{name} [post]
func (h *ToolsHandler) InvokeTool(c *gin.Context) {
	name := c.Param("name")

	var args map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body must be a JSON object",
		})
		return
	}

	res := h.dispatcher.Invoke(c.Request.Context(), name, args)

	status, hint := statusFor(res)

	resp := types.ToolResultResponse{
		Tool:    name,
		Text:    res.Text,
		IsError: res.IsError,
		Hint:    hint,
	}
	if res.IsError {
		resp.ErrorKind = string(res.Kind)
	}

	c.JSON(status, resp)
}

// statusFor maps a result to its HTTP status and an optional hint for
// upstream failures the caller can act on.
func statusFor(res tools.Result) (int, string) {
	switch res.Kind {
	case tools.KindOK:
		return http.StatusOK, ""
	case tools.KindInvocation:
		return http.StatusNotFound, ""
	case tools.KindValidation:
		return http.StatusBadRequest, ""
	case tools.KindConfiguration:
		return http.StatusServiceUnavailable, ""
	case tools.KindTransport:
		return http.StatusGatewayTimeout, ""
	}

	var apiErr *lifx.APIError
	if errors.As(res.Err, &apiErr) {
		switch {
		case apiErr.IsRateLimited():
			return http.StatusTooManyRequests, "LIFX rate limit reached, retry later"
		case apiErr.IsAuthError():
			return http.StatusBadGateway, "LIFX rejected the token, check " + lifx.TokenEnvVar
		}
	}
	return http.StatusBadGateway, ""
}
