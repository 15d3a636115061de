package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("KeepsExplicitBaseURL", func(t *testing.T) {
		client := NewClient("http://ollama.internal:11434", "qwen3:4b")
		assert.Equal(t, "http://ollama.internal:11434", client.BaseURL)
		assert.Equal(t, "qwen3:4b", client.Model)
	})

	t.Run("DefaultsBaseURL", func(t *testing.T) {
		client := NewClient("", "qwen3:4b")
		assert.Equal(t, DefaultBaseURL, client.BaseURL)
	})
}

func TestGenerateContent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received generateRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/generate", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Write([]byte(`{"response": "neutral", "done": true}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "qwen3:4b")
		resp, err := client.GenerateContent(context.Background(), "classify this")
		assert.NoError(t, err)
		assert.Equal(t, "neutral", resp)
		assert.Equal(t, "qwen3:4b", received.Model)
		assert.False(t, received.Stream)
	})

	t.Run("MissingModel", func(t *testing.T) {
		client := NewClient("http://localhost:11434", "")
		_, err := client.GenerateContent(context.Background(), "classify this")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "model is required")
	})

	t.Run("PartialResponse", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": "neu", "done": false}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "qwen3:4b")
		_, err := client.GenerateContent(context.Background(), "classify this")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "partial response")
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "missing")
		_, err := client.GenerateContent(context.Background(), "classify this")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		client := NewClient("http://localhost:1", "qwen3:4b")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.GenerateContent(ctx, "classify this")
		assert.Error(t, err)
	})
}
