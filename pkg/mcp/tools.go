package mcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

// registerTools registers every catalogue tool with the server
func (s *Server) registerTools() {
	for _, t := range s.dispatcher.Tools() {
		s.mcpServer.AddTool(mcp.NewTool(t.Name, toolOptions(t)...), s.handleTool(t.Name))
	}
}

// toolOptions renders a catalogue entry as mcp-go tool options.
func toolOptions(t *tools.Tool) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithDescription(t.Description),
		mcp.WithReadOnlyHintAnnotation(t.Method == http.MethodGet),
		mcp.WithIdempotentHintAnnotation(t.Method != http.MethodPost),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	}

	for _, p := range t.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		if len(p.Enum) > 0 {
			props = append(props, mcp.Enum(p.Enum...))
		}
		if p.Minimum != nil {
			props = append(props, mcp.Min(*p.Minimum))
		}
		if p.Maximum != nil {
			props = append(props, mcp.Max(*p.Maximum))
		}
		if p.ExclusiveMinimum != nil {
			props = append(props, exclusiveMin(*p.ExclusiveMinimum))
		}

		switch p.Type {
		case tools.TypeNumber:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case tools.TypeInteger:
			opts = append(opts, mcp.WithNumber(p.Name, append(props, integer())...))
		case tools.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}

	return opts
}

// mcp-go has no helpers for these two keywords

func exclusiveMin(v float64) mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["exclusiveMinimum"] = v
	}
}

func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}
