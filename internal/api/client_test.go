package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", res.Status)
	}
	if !strings.Contains(string(res.Body), `"ok"`) {
		t.Errorf("unexpected body: %s", res.Body)
	}
}

func TestHealth_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL + "/").Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/health" {
		t.Errorf("expected path /health, got %q", gotPath)
	}
}

func TestListModels_DescriptorArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"gpt-4o","family":"gpt-4o","maxInputTokens":128000},{"id":"local-llama","family":"llama","maxInputTokens":4096}]`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !list.Decoded {
		t.Fatal("expected descriptor array to decode")
	}
	if len(list.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(list.Models))
	}
	if list.Models[0].ID != "gpt-4o" || list.Models[0].MaxInputTokens != 128000 {
		t.Errorf("unexpected first model: %+v", list.Models[0])
	}
	if list.Models[1].Family != "llama" {
		t.Errorf("unexpected second model: %+v", list.Models[1])
	}
}

func TestListModels_FallbackShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"no provider configured"}`))
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL).ListModels(context.Background())
	if err != nil {
		t.Fatalf("non-2xx must not be an error: %v", err)
	}
	if list.Decoded {
		t.Error("object body should not decode as a descriptor array")
	}
	if list.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", list.Status)
	}
	if !strings.Contains(string(list.Raw), "no provider") {
		t.Errorf("expected fallback payload in Raw, got: %s", list.Raw)
	}
}

func TestChat_SuccessShape(t *testing.T) {
	var gotReq struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type: %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Write([]byte(`{"content":"Four.","usage":{"inputTokens":12,"outputTokens":3}}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Chat(context.Background(), "gpt-4o", []Message{
		{Role: RoleUser, Content: "What is 2 + 2?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply == nil {
		t.Fatal("expected success reply")
	}
	if res.Reply.Content != "Four." {
		t.Errorf("unexpected content: %s", res.Reply.Content)
	}
	if res.Reply.Usage["inputTokens"] != float64(12) {
		t.Errorf("unexpected usage: %v", res.Reply.Usage)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("expected model gpt-4o in request, got %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != RoleUser {
		t.Errorf("unexpected request messages: %+v", gotReq.Messages)
	}
}

func TestChat_ErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Chat(context.Background(), "nope", []Message{
		{Role: RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("non-2xx must not be an error: %v", err)
	}
	if res.Reply != nil {
		t.Error("body without content must not decode as a reply")
	}
	if res.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", res.Status)
	}
	if !strings.Contains(string(res.Raw), "model not found") {
		t.Errorf("expected raw error body, got: %s", res.Raw)
	}
}

func TestChat_UnreadableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream blew up"))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Chat(context.Background(), "gpt-4o", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != nil {
		t.Error("non-JSON body must not decode as a reply")
	}
	if res.Raw != nil {
		t.Error("non-JSON body must leave Raw nil")
	}
}

func TestChat_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Chat(context.Background(), "gpt-4o", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply != nil || res.Raw != nil {
		t.Errorf("empty body should yield neither arm: %+v", res)
	}
}

func TestChat_NoUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"hello"}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL).Chat(context.Background(), "gpt-4o", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reply == nil {
		t.Fatal("expected success reply")
	}
	if res.Reply.Usage != nil {
		t.Errorf("expected nil usage, got: %v", res.Reply.Usage)
	}
}

func TestConnectError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Health(context.Background())
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var ce *ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectError, got: %v", err)
	}
	if ce.URL != url {
		t.Errorf("expected URL %q in error, got %q", url, ce.URL)
	}
	if ce.Unwrap() == nil {
		t.Error("ConnectError should wrap the transport error")
	}
}
