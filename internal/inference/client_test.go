package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestClient_Complete(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		var captured chatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" {
				t.Errorf("unexpected method: %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type: %s", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}

			resp := map[string]any{
				"choices": []map[string]any{
					{
						"message": map[string]any{
							"role":    "assistant",
							"content": `{"document_type":"INDEX_1","entries":[]}`,
						},
						"finish_reason": "stop",
					},
				},
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := NewClient(Config{EndpointURL: server.URL})

		content, err := client.Complete(context.Background(), "extract this", "data:image/jpeg;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if content != `{"document_type":"INDEX_1","entries":[]}` {
			t.Errorf("content = %q", content)
		}

		// Fixed decoding parameters and single two-part user message.
		if captured.Model != DefaultModel {
			t.Errorf("model = %q", captured.Model)
		}
		if captured.Temperature != 0.2 {
			t.Errorf("temperature = %v", captured.Temperature)
		}
		if captured.TopP != 0.5 {
			t.Errorf("top_p = %v", captured.TopP)
		}
		if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" {
			t.Fatalf("messages = %+v", captured.Messages)
		}
		parts := captured.Messages[0].Content
		if len(parts) != 2 {
			t.Fatalf("content parts = %d", len(parts))
		}
		if parts[0].Type != "text" || parts[0].Text != "extract this" {
			t.Errorf("text part = %+v", parts[0])
		}
		if parts[1].Type != "image_url" || parts[1].ImageURL == nil ||
			parts[1].ImageURL.URL != "data:image/jpeg;base64,aGVsbG8=" {
			t.Errorf("image part = %+v", parts[1])
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		client := NewClient(Config{EndpointURL: server.URL})
		_, err := client.Complete(context.Background(), "p", "d")
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("error = %v, want ErrEmptyResponse", err)
		}
	})

	t.Run("server error surfaces immediately", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model crashed", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(Config{EndpointURL: server.URL})
		_, err := client.Complete(context.Background(), "p", "d")
		if err == nil || !strings.Contains(err.Error(), "status 500") {
			t.Errorf("error = %v, want status 500", err)
		}
	})

	t.Run("connection failure", func(t *testing.T) {
		client := NewClient(Config{
			EndpointURL: "http://127.0.0.1:1/v1/chat/completions",
			Timeout:     time.Second,
		})
		_, err := client.Complete(context.Background(), "p", "d")
		if err == nil {
			t.Error("expected transport error")
		}
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	if c.endpointURL != DefaultEndpointURL {
		t.Errorf("endpointURL = %q", c.endpointURL)
	}
	if c.Model() != DefaultModel {
		t.Errorf("Model() = %q", c.Model())
	}
	if c.temperature != 0.2 || c.topP != 0.5 {
		t.Errorf("decoding params = %v/%v", c.temperature, c.topP)
	}
	if c.client.Timeout != 300*time.Second {
		t.Errorf("timeout = %v", c.client.Timeout)
	}
}

func TestWaitReady(t *testing.T) {
	t.Run("succeeds once endpoint answers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/models" {
				t.Errorf("unexpected probe path: %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(Config{EndpointURL: server.URL + "/v1/chat/completions"})
		if err := client.WaitReady(context.Background(), 3*time.Second); err != nil {
			t.Errorf("WaitReady() = %v", err)
		}
	})

	t.Run("gives up when endpoint never answers", func(t *testing.T) {
		client := NewClient(Config{EndpointURL: "http://127.0.0.1:1/v1/chat/completions"})
		if err := client.WaitReady(context.Background(), 2*time.Second); err == nil {
			t.Error("expected error")
		}
	})
}

func TestModelsURL(t *testing.T) {
	if got := modelsURL("http://localhost:8001/v1/chat/completions"); got != "http://localhost:8001/v1/models" {
		t.Errorf("modelsURL = %q", got)
	}
	if got := modelsURL("http://localhost:8001/v1/"); got != "http://localhost:8001/v1/models" {
		t.Errorf("modelsURL = %q", got)
	}
}

func TestEncodeImageDataURI(t *testing.T) {
	t.Run("encodes file contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "page.jpg")
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatal(err)
		}

		uri, err := EncodeImageDataURI(path)
		if err != nil {
			t.Fatalf("EncodeImageDataURI() error = %v", err)
		}
		if uri != "data:image/jpeg;base64,aGVsbG8=" {
			t.Errorf("uri = %q", uri)
		}
	})

	t.Run("unreadable file fails before any network use", func(t *testing.T) {
		_, err := EncodeImageDataURI(filepath.Join(t.TempDir(), "missing.jpg"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})
}
