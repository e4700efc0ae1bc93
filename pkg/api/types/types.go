package types

import (
	"encoding/json"
	"time"
)

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status     string    `json:"status"`
	Configured bool      `json:"configured"`
	Message    string    `json:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToolInfo describes one tool and its argument schema
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Method      string          `json:"method"`
	InputSchema json.RawMessage `json:"input_schema" swaggertype:"object"`
}

// ListToolsResponse is returned from GET /tools
type ListToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
	Count int        `json:"count"`
}

// ToolResultResponse is returned from POST /tools/:name
type ToolResultResponse struct {
	Tool      string `json:"tool"`
	Text      string `json:"text"`
	IsError   bool   `json:"is_error"`
	ErrorKind string `json:"error_kind,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

// ActivityEntry is one recorded tool invocation
type ActivityEntry struct {
	ID         int64     `json:"id"`
	Tool       string    `json:"tool"`
	Selector   string    `json:"selector,omitempty"`
	Outcome    string    `json:"outcome"`
	DurationMS float64   `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityResponse is returned from GET /activity
type ActivityResponse struct {
	Calls []ActivityEntry `json:"calls"`
	Count int             `json:"count"`
}
