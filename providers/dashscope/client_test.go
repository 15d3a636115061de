package dashscope

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		client, err := NewClient("key", "https://example.com/v1", "qwen-plus")
		assert.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "qwen-plus", client.Model)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := NewClient("", "https://example.com/v1", "qwen-plus")
		assert.Error(t, err)
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		_, err := NewClient("key", "", "qwen-plus")
		assert.Error(t, err)
	})

	t.Run("MissingModel", func(t *testing.T) {
		_, err := NewClient("key", "https://example.com/v1", "")
		assert.Error(t, err)
	})
}

func TestGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "qwen-plus",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "neutral"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, "qwen-plus")
	assert.NoError(t, err)

	resp, err := client.GenerateContent(context.Background(), "classify this")
	assert.NoError(t, err)
	assert.Equal(t, "neutral", resp)
}
