// Package panel embeds the browser control panel. The same page is served
// by the HTTP API and exposed to MCP hosts as a ui:// resource.
package panel

import (
	_ "embed"
)

//go:embed index.html
var indexHTML []byte

// HTML returns the control panel page.
func HTML() []byte {
	return indexHTML
}
