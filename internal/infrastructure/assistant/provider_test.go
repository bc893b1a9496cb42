package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/practiq/backend/internal/infrastructure/config"
)

func TestOpenAIProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first choice", func(t *testing.T) {
		var gotAuth string
		var gotReq chatCompletionRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": "  VAT returns are due quarterly.  "}},
				},
			})
		}))
		defer server.Close()

		p, err := NewOpenAIProvider(config.AssistantConfig{
			APIKey:  "sk-test",
			BaseURL: server.URL + "/v1",
			Model:   "gpt-4o-mini",
			Timeout: 5 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())

		reply, err := p.Complete(ctx, "be brief", "when are VAT returns due?")
		require.NoError(t, err)
		assert.Equal(t, "VAT returns are due quarterly.", reply)
		assert.Equal(t, "Bearer sk-test", gotAuth)
		assert.Equal(t, "gpt-4o-mini", gotReq.Model)
		require.Len(t, gotReq.Messages, 2)
		assert.Equal(t, "system", gotReq.Messages[0].Role)
		assert.Equal(t, "be brief", gotReq.Messages[0].Content)
		assert.Equal(t, "user", gotReq.Messages[1].Role)
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "invalid api key", "type": "invalid_request_error"},
			})
		}))
		defer server.Close()

		p, err := NewOpenAIProvider(config.AssistantConfig{APIKey: "sk-bad", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = p.Complete(ctx, "sys", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("rejects empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		p, err := NewOpenAIProvider(config.AssistantConfig{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = p.Complete(ctx, "sys", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("requires an api key", func(t *testing.T) {
		_, err := NewOpenAIProvider(config.AssistantConfig{})
		assert.Error(t, err)
	})
}

func TestOllamaProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the reply message", func(t *testing.T) {
		var gotReq ollamaChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/chat", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]string{"role": "assistant", "content": "Corporation tax is due nine months after year end."},
				"done":    true,
			})
		}))
		defer server.Close()

		p := NewOllamaProvider(config.AssistantConfig{OllamaHost: server.URL, OllamaModel: "llama3"})
		assert.Equal(t, "ollama", p.Name())

		reply, err := p.Complete(ctx, "be brief", "when is corporation tax due?")
		require.NoError(t, err)
		assert.Equal(t, "Corporation tax is due nine months after year end.", reply)
		assert.Equal(t, "llama3", gotReq.Model)
		assert.False(t, gotReq.Stream)
	})

	t.Run("surfaces server errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "model 'llama3' not found"})
		}))
		defer server.Close()

		p := NewOllamaProvider(config.AssistantConfig{OllamaHost: server.URL, OllamaModel: "llama3"})

		_, err := p.Complete(ctx, "sys", "user")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model 'llama3' not found")
	})
}

func TestNewProvider(t *testing.T) {
	t.Run("selects ollama", func(t *testing.T) {
		p, err := NewProvider(config.AssistantConfig{Provider: "ollama"})
		require.NoError(t, err)
		assert.Equal(t, "ollama", p.Name())
	})

	t.Run("defaults to openai", func(t *testing.T) {
		p, err := NewProvider(config.AssistantConfig{Provider: "openai", APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())
	})
}
