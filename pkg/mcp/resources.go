package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/panel"
)

const (
	// DocsURI identifies the API documentation resource
	DocsURI = "lifx://api-docs"

	// PanelURI identifies the control panel page
	PanelURI = "ui://lifx/control-panel"

	panelMIMEType = "text/html;profile=mcp-app"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.NewResource(DocsURI, "LIFX API Documentation",
			mcp.WithResourceDescription("Tools, selectors and color formats supported by this server"),
			mcp.WithMIMEType("text/markdown"),
		),
		s.handleDocs,
	)

	s.mcpServer.AddResource(
		mcp.NewResource(PanelURI, "LIFX Control Panel",
			mcp.WithResourceDescription("Interactive panel that lists lights and calls the same tools"),
			mcp.WithMIMEType(panelMIMEType),
		),
		s.handlePanel,
	)
}

func (s *Server) handleDocs(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DocsURI,
			MIMEType: "text/markdown",
			Text:     s.Docs(),
		},
	}, nil
}

func (s *Server) handlePanel(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PanelURI,
			MIMEType: panelMIMEType,
			Text:     string(panel.HTML()),
		},
	}, nil
}

// Docs renders the documentation resource from the tool catalogue.
func (s *Server) Docs() string {
	var b strings.Builder

	b.WriteString("# LIFX MCP Server\n\n")
	b.WriteString("This server provides access to the LIFX HTTP API through MCP tools.\n\n")

	b.WriteString("## Available Tools\n\n")
	for i, t := range s.dispatcher.Tools() {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, t.Name, t.Description)
	}

	fmt.Fprintf(&b, `
## Authentication

The server reads your LIFX API token from the %s environment variable. Get yours at: %s

## Selectors

Use selectors to target specific lights:
- `+"`all`"+` - All lights
- `+"`label:Kitchen`"+` - Lights labeled "Kitchen"
- `+"`group:Living Room`"+` - Lights in "Living Room" group
- `+"`location:Home`"+` - Lights at "Home" location
- `+"`id:d073d5000000`"+` - Specific light by ID

## Color Formats

- Named colors: `+"`red`, `blue`, `green`"+`, etc.
- RGB: `+"`rgb:255,0,0`"+`
- HSB: `+"`hue:120 saturation:1.0 brightness:0.5`"+`
- Kelvin: `+"`kelvin:3500`"+`

## Response Formats

`+"`list_lights`"+` and `+"`list_scenes`"+` return a readable summary by default. Pass `+"`format: \"json\"`"+` for structured data.
`, lifx.TokenEnvVar, lifx.TokenURL)

	return b.String()
}
