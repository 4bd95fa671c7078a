package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/csvchat/csvchat-go/internal/adapters/llm/gemini"
	"github.com/csvchat/csvchat-go/internal/domain"
)

func candidatesBody(texts ...string) map[string]any {
	parts := make([]map[string]any, len(texts))
	for i, text := range texts {
		parts[i] = map[string]any{"text": text}
	}
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestClient_Generate_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify method, path and key.
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("bad key param: %s", r.URL.Query().Get("key"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidatesBody(`{"answer": "ok"}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(
		srv.Client(),
		"test-key",
		srv.URL,
		"gemini-1.5-flash",
		slog.Default(),
	)

	out, err := client.Generate(context.Background(), "What is the top product?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"answer": "ok"}` {
		t.Errorf("unexpected reply: %q", out)
	}

	// Verify the request carries the prompt as a single user turn.
	contents, ok := gotReq["contents"].([]any)
	if !ok || len(contents) != 1 {
		t.Fatalf("expected 1 content entry, got %v", gotReq["contents"])
	}
}

func TestClient_Generate_PreservesWhitespace(t *testing.T) {
	reply := "\n  {\"answer\": \"indented\"}\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidatesBody(reply))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	out, err := client.Generate(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != reply {
		t.Errorf("reply was altered: %q", out)
	}
}

func TestClient_Generate_JoinsParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidatesBody(` {"answer": `, `"split"}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	out, err := client.Generate(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != ` {"answer": "split"}` {
		t.Errorf("unexpected joined reply: %q", out)
	}
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), "q")
	if !errors.Is(err, domain.ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestClient_Generate_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(candidatesBody(""))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), "q")
	if !errors.Is(err, domain.ErrEmptyCompletion) {
		t.Errorf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestClient_Generate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error for API error body, got nil")
	}
	if errors.Is(err, domain.ErrEmptyCompletion) {
		t.Errorf("API error must not read as an empty completion: %v", err)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"code": 500, "message": "boom"}}`))
	}))
	defer srv.Close()

	client := gemini.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error for upstream 500, got nil")
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}
