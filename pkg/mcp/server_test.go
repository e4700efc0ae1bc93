package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

func newTestServer(t *testing.T, token, body string) (*Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	client := lifx.NewClient(lifx.Config{Token: token, BaseURL: upstream.URL}, upstream.Client())
	return NewServer(tools.NewDispatcher(client)), &hits
}

// rpc sends one JSON-RPC request through the server and returns the
// decoded result object.
func rpc(t *testing.T, s *Server, method string, params any) map[string]any {
	t.Helper()

	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatal(err)
	}

	reply := s.MCPServer().HandleMessage(context.Background(), raw)
	out, err := json.Marshal(reply)
	if err != nil {
		t.Fatal(err)
	}

	var resp struct {
		Result map[string]any `json:"result"`
		Error  any            `json:"error"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		t.Fatalf("failed to decode reply %s: %v", out, err)
	}
	if resp.Error != nil {
		t.Fatalf("%s returned error: %v", method, resp.Error)
	}
	return resp.Result
}

func initialize(t *testing.T, s *Server) {
	t.Helper()
	rpc(t, s, "initialize", map[string]any{
		"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "1.0"},
	})
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.handleTool(name)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestToolsList(t *testing.T) {
	s, _ := newTestServer(t, "tok", `{}`)
	initialize(t, s)

	result := rpc(t, s, "tools/list", map[string]any{})
	list, _ := result["tools"].([]any)
	if len(list) != len(tools.Catalogue()) {
		t.Fatalf("expected %d tools, got %d", len(tools.Catalogue()), len(list))
	}

	byName := map[string]map[string]any{}
	for _, item := range list {
		tool := item.(map[string]any)
		byName[tool["name"].(string)] = tool
	}

	setState := byName[tools.SetState]
	if setState == nil {
		t.Fatal("set_state not listed")
	}
	props := setState["inputSchema"].(map[string]any)["properties"].(map[string]any)
	brightness := props["brightness"].(map[string]any)
	if brightness["minimum"] != 0.0 || brightness["maximum"] != 1.0 {
		t.Errorf("brightness bounds = %v..%v", brightness["minimum"], brightness["maximum"])
	}

	breathe := byName[tools.BreatheEffect]
	bprops := breathe["inputSchema"].(map[string]any)["properties"].(map[string]any)
	if bprops["cycles"].(map[string]any)["type"] != "integer" {
		t.Errorf("cycles type = %v", bprops["cycles"])
	}
	if bprops["period"].(map[string]any)["exclusiveMinimum"] != 0.0 {
		t.Errorf("period = %v", bprops["period"])
	}

	activate := byName[tools.ActivateScene]
	required, _ := activate["inputSchema"].(map[string]any)["required"].([]any)
	if len(required) != 1 || required[0] != "scene_uuid" {
		t.Errorf("activate_scene required = %v", required)
	}

	annotations := byName[tools.ListLights]["annotations"].(map[string]any)
	if annotations["readOnlyHint"] != true {
		t.Errorf("list_lights annotations = %v", annotations)
	}
}

func TestHandleTool_Success(t *testing.T) {
	s, hits := newTestServer(t, "tok", `{"results":[]}`)

	result := callTool(t, s, tools.TogglePower, map[string]any{"selector": "label:Desk"})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.HasPrefix(text, `Power toggled successfully for selector "label:Desk".`) {
		t.Errorf("text = %q", text)
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d", hits.Load())
	}
}

func TestHandleTool_ErrorsAreResults(t *testing.T) {
	tests := []struct {
		name  string
		token string
		tool  string
		args  map[string]any
		want  string
	}{
		{"missing token", "", tools.ListLights, nil, "LIFX_API_TOKEN environment variable is not set"},
		{"validation", "tok", tools.SetState, map[string]any{"brightness": 2.5}, "invalid arguments for set_state"},
		{"unknown", "tok", "dim_lights", nil, "Error: Unknown tool: dim_lights"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, hits := newTestServer(t, tt.token, `{}`)

			result := callTool(t, s, tt.tool, tt.args)
			if !result.IsError {
				t.Fatal("expected error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.want) {
				t.Errorf("text = %q, want it to contain %q", text, tt.want)
			}
			if hits.Load() != 0 {
				t.Errorf("expected no upstream calls, got %d", hits.Load())
			}
		})
	}
}

func TestToolsCall_ThroughProtocol(t *testing.T) {
	s, _ := newTestServer(t, "tok", `[]`)
	initialize(t, s)

	result := rpc(t, s, "tools/call", map[string]any{
		"name":      tools.ListLights,
		"arguments": map[string]any{"selector": "all"},
	})
	content := result["content"].([]any)
	if text := content[0].(map[string]any)["text"]; text != "Found 0 lights:" {
		t.Errorf("text = %v", text)
	}
}

func TestResources(t *testing.T) {
	s, _ := newTestServer(t, "tok", `{}`)
	initialize(t, s)

	list := rpc(t, s, "resources/list", map[string]any{})
	resources, _ := list["resources"].([]any)
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}

	docs := rpc(t, s, "resources/read", map[string]any{"uri": DocsURI})
	contents := docs["contents"].([]any)
	text := contents[0].(map[string]any)["text"].(string)
	for _, want := range []string{"## Available Tools", "**list_lights**", "**effects_off**", lifx.TokenURL, "`group:Living Room`"} {
		if !strings.Contains(text, want) {
			t.Errorf("docs missing %q", want)
		}
	}

	panel := rpc(t, s, "resources/read", map[string]any{"uri": PanelURI})
	page := panel["contents"].([]any)[0].(map[string]any)
	if page["mimeType"] != panelMIMEType {
		t.Errorf("mime type = %v", page["mimeType"])
	}
	if !strings.Contains(page["text"].(string), "tools/call") {
		t.Error("panel page should bridge tool calls over postMessage")
	}
}

func TestDocs_ListsToolsInOrder(t *testing.T) {
	s, _ := newTestServer(t, "tok", `{}`)
	docs := s.Docs()

	last := -1
	for i, tool := range tools.Catalogue() {
		idx := strings.Index(docs, "**"+tool.Name+"**")
		if idx < 0 {
			t.Fatalf("tool %s missing from docs", tool.Name)
		}
		if idx < last {
			t.Errorf("tool %d (%s) out of order", i, tool.Name)
		}
		last = idx
	}
}
