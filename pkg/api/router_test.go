package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/urmzd/lifx-mcp/pkg/api/types"
	"github.com/urmzd/lifx-mcp/pkg/db"
	"github.com/urmzd/lifx-mcp/pkg/lifx"
	"github.com/urmzd/lifx-mcp/pkg/metrics"
	"github.com/urmzd/lifx-mcp/pkg/tools"
)

type testEnv struct {
	router   *Router
	upstream *atomic.Int32
	database *db.DB
}

func newTestEnv(t *testing.T, token string, status int, body string) *testEnv {
	t.Helper()

	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(upstream.Close)

	database, err := db.Setup(context.Background(), filepath.Join(t.TempDir(), "lifx.db"))
	if err != nil {
		t.Fatalf("setup db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	client := lifx.NewClient(lifx.Config{Token: token, BaseURL: upstream.URL}, upstream.Client())
	collector := metrics.NewCollector()
	dispatcher := tools.NewDispatcher(client,
		tools.WithObserver(collector),
		tools.WithObserver(db.NewActivityRecorder(database)),
	)

	return &testEnv{
		router:   NewRouter(dispatcher, client, collector.Handler(), database.ToolCalls()),
		upstream: &hits,
		database: database,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) types.ToolResultResponse {
	t.Helper()
	var res types.ToolResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return res
}

func TestInvokeTool_Success(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{"results":[]}`)

	rec := env.do(t, http.MethodPost, "/api/v1/tools/toggle_power", `{"selector":"label:Kitchen"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	res := decodeResult(t, rec)
	if res.IsError || res.ErrorKind != "" {
		t.Errorf("unexpected error result: %+v", res)
	}
	if !strings.HasPrefix(res.Text, `Power toggled successfully for selector "label:Kitchen".`) {
		t.Errorf("text = %q", res.Text)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}
}

func TestInvokeTool_EmptyBody(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `[]`)

	rec := env.do(t, http.MethodPost, "/api/v1/tools/list_lights", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if res := decodeResult(t, rec); res.Text != "Found 0 lights:" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestInvokeTool_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		status   int
		tool     string
		body     string
		want     int
		wantKind string
		hits     int32
	}{
		{"validation", "tok", http.StatusOK, "set_state", `{"brightness":1.5}`, http.StatusBadRequest, "validation", 0},
		{"unknown tool", "tok", http.StatusOK, "dim_lights", `{}`, http.StatusNotFound, "invocation", 0},
		{"missing token", "", http.StatusOK, "list_lights", `{}`, http.StatusServiceUnavailable, "configuration", 0},
		{"upstream", "tok", http.StatusUnauthorized, "list_lights", `{}`, http.StatusBadGateway, "upstream", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.token, tt.status, `{"error":"nope"}`)

			rec := env.do(t, http.MethodPost, "/api/v1/tools/"+tt.tool, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			res := decodeResult(t, rec)
			if !res.IsError || res.ErrorKind != tt.wantKind {
				t.Errorf("result = %+v, want kind %s", res, tt.wantKind)
			}
			if !strings.HasPrefix(res.Text, "Error: ") {
				t.Errorf("text = %q", res.Text)
			}
			if got := env.upstream.Load(); got != tt.hits {
				t.Errorf("upstream hits = %d, want %d", got, tt.hits)
			}
		})
	}
}

func TestInvokeTool_BadJSON(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{}`)

	rec := env.do(t, http.MethodPost, "/api/v1/tools/set_state", `[1,2`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if env.upstream.Load() != 0 {
		t.Error("no upstream call expected")
	}
}

func TestListTools(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{}`)

	rec := env.do(t, http.MethodGet, "/api/v1/tools", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp types.ListToolsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 9 || len(resp.Tools) != 9 {
		t.Fatalf("expected 9 tools, got %d", resp.Count)
	}
	if resp.Tools[0].Name != tools.ListLights {
		t.Errorf("first tool = %s", resp.Tools[0].Name)
	}

	var schema map[string]any
	if err := json.Unmarshal(resp.Tools[1].InputSchema, &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if schema["type"] != "object" {
		t.Errorf("schema type = %v", schema["type"])
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{}`)
	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := env.do(t, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}

	missing := newTestEnv(t, "", http.StatusOK, `{}`)
	rec := missing.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
	var resp types.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Configured || !strings.Contains(resp.Message, lifx.TokenEnvVar) {
		t.Errorf("unexpected health: %+v", resp)
	}
}

func TestActivity(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{"results":[]}`)

	env.do(t, http.MethodPost, "/api/v1/tools/toggle_power", `{"selector":"label:Desk"}`)
	env.do(t, http.MethodPost, "/api/v1/tools/set_state", `{"brightness":7}`)

	rec := env.do(t, http.MethodGet, "/api/v1/activity?limit=10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp types.ActivityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 entries, got %d", resp.Count)
	}
	if resp.Calls[0].Tool != tools.SetState || resp.Calls[0].Outcome != "validation" {
		t.Errorf("newest entry = %+v", resp.Calls[0])
	}
	if resp.Calls[1].Selector != "label:Desk" || resp.Calls[1].Outcome != "ok" {
		t.Errorf("oldest entry = %+v", resp.Calls[1])
	}

	if rec := env.do(t, http.MethodGet, "/api/v1/activity?limit=0", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d", rec.Code)
	}
}

func TestPanelAndMetrics(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `[]`)
	env.do(t, http.MethodPost, "/api/v1/tools/list_lights", `{}`)

	rec := env.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "LIFX Control") {
		t.Errorf("panel status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}

	rec = env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `lifx_tool_invocations_total{outcome="ok",tool="list_lights"} 1`) {
		t.Errorf("metrics missing invocation counter:\n%s", rec.Body.String())
	}
}

func TestRequestID_Propagated(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	env.router.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q", got)
	}
}

func TestInvokeTool_UpstreamHints(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		want     int
		hint     string
	}{
		{"rate limited", http.StatusTooManyRequests, http.StatusTooManyRequests, "rate limit"},
		{"unauthorized", http.StatusUnauthorized, http.StatusBadGateway, lifx.TokenEnvVar},
		{"forbidden", http.StatusForbidden, http.StatusBadGateway, lifx.TokenEnvVar},
		{"server error", http.StatusInternalServerError, http.StatusBadGateway, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "tok", tt.upstream, `{"error":"nope"}`)

			rec := env.do(t, http.MethodPost, "/api/v1/tools/list_lights", `{}`)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			res := decodeResult(t, rec)
			if res.ErrorKind != "upstream" {
				t.Errorf("error kind = %q", res.ErrorKind)
			}
			if tt.hint == "" && res.Hint != "" {
				t.Errorf("unexpected hint %q", res.Hint)
			}
			if !strings.Contains(res.Hint, tt.hint) {
				t.Errorf("hint = %q, want it to mention %q", res.Hint, tt.hint)
			}
		})
	}
}

func TestInvokeTool_UnknownNamesShareOneLabel(t *testing.T) {
	env := newTestEnv(t, "tok", http.StatusOK, `{}`)

	for i := 0; i < 25; i++ {
		rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tools/junk_%d", i), `{}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	body := env.do(t, http.MethodGet, "/metrics", "").Body.String()
	if strings.Contains(body, `tool="junk_`) {
		t.Error("caller-supplied tool names leaked into metric labels")
	}
	if !strings.Contains(body, `lifx_tool_invocations_total{outcome="invocation",tool="unknown"} 25`) {
		t.Errorf("expected a single unknown series:\n%s", body)
	}

	calls, err := env.database.ToolCalls().Recent(context.Background(), 100)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range calls {
		if c.Tool != tools.UnknownToolLabel {
			t.Errorf("activity row tool = %q", c.Tool)
		}
	}
}
