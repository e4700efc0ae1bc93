package lifx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		Token:   "test-token",
		BaseURL: server.URL + "/v1/",
	}, server.Client())
}

func TestDo_SendsHeadersAndBody(t *testing.T) {
	var gotAuth, gotUA, gotType, gotPath, gotBody string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "lights/all/toggle",
		Body:   map[string]any{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if gotPath != "/v1/lights/all/toggle" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody != "{}" {
		t.Errorf("body = %q, want {}", gotBody)
	}
	if !resp.IsJSON() {
		t.Error("expected JSON response")
	}
}

func TestDo_GetSendsNoBody(t *testing.T) {
	var gotType string
	var gotLen int64
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		gotLen = r.ContentLength
		w.WriteHeader(http.StatusOK)
	})

	resp, err := client.Do(context.Background(), Request{Path: "scenes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotType != "" {
		t.Errorf("GET should not set Content-Type, got %q", gotType)
	}
	if gotLen > 0 {
		t.Errorf("GET should not send a body, got %d bytes", gotLen)
	}
	if !resp.Empty() {
		t.Error("expected empty response")
	}
	if resp.Pretty() != "" {
		t.Errorf("empty response should render as empty, got %q", resp.Pretty())
	}
}

func TestDo_QueryPassedThrough(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.Do(context.Background(), Request{Path: "color", Query: "color=rgb%3A0%2C0%2C0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "color=rgb%3A0%2C0%2C0" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestDo_APIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Could not find label:Nope"}`))
	})

	_, err := client.Do(context.Background(), Request{Path: "lights/label:Nope"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	msg := apiErr.Error()
	if !strings.Contains(msg, "404") || !strings.Contains(msg, "Not Found") || !strings.Contains(msg, "Could not find label:Nope") {
		t.Errorf("message missing details: %s", msg)
	}
}

func TestDo_RateLimitAndAuth(t *testing.T) {
	for _, tc := range []struct {
		status      int
		auth, limit bool
	}{
		{http.StatusUnauthorized, true, false},
		{http.StatusForbidden, true, false},
		{http.StatusTooManyRequests, false, true},
		{http.StatusInternalServerError, false, false},
	} {
		status := tc.status
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := client.Do(context.Background(), Request{Path: "lights/all"})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("%d: expected *APIError, got %v", status, err)
		}
		if apiErr.IsAuthError() != tc.auth {
			t.Errorf("%d: IsAuthError = %v", status, apiErr.IsAuthError())
		}
		if apiErr.IsRateLimited() != tc.limit {
			t.Errorf("%d: IsRateLimited = %v", status, apiErr.IsRateLimited())
		}
	}
}

func TestDo_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{Token: "t", BaseURL: url}, nil)
	_, err := client.Do(context.Background(), Request{Path: "lights/all"})

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !strings.HasPrefix(tErr.Error(), "Failed to make LIFX API request:") {
		t.Errorf("unexpected message: %s", tErr.Error())
	}
}

func TestDo_MissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, server.Client())
	_, err := client.Do(context.Background(), Request{Path: "lights/all"})

	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if !strings.Contains(err.Error(), TokenEnvVar) || !strings.Contains(err.Error(), TokenURL) {
		t.Errorf("message should name the variable and token URL: %s", err)
	}
	if called {
		t.Error("no request should be made without a token")
	}
}

func TestResponse_PrettyKeepsNumbers(t *testing.T) {
	resp := &Response{
		ContentType: "application/json; charset=utf-8",
		Body:        []byte(`{"id":12345678901234567890,"ok":true}`),
	}
	got := resp.Pretty()
	want := "{\n  \"id\": 12345678901234567890,\n  \"ok\": true\n}"
	if got != want {
		t.Errorf("Pretty() = %q, want %q", got, want)
	}
}

func TestResponse_PrettyRawText(t *testing.T) {
	resp := &Response{ContentType: "text/plain", Body: []byte("accepted")}
	if resp.Pretty() != "accepted" {
		t.Errorf("Pretty() = %q", resp.Pretty())
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Token: "x"}, nil)
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
	if !c.IsConfigured() {
		t.Error("expected configured client")
	}
}
