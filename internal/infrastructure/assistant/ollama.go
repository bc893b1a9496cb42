package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appassistant "github.com/practiq/backend/internal/application/assistant"
	"github.com/practiq/backend/internal/infrastructure/config"
)

var _ appassistant.Provider = (*OllamaProvider)(nil)

const defaultOllamaHost = "http://localhost:11434"

// OllamaProvider talks to a local Ollama server
type OllamaProvider struct {
	httpClient *http.Client
	host       string
	model      string
}

// NewOllamaProvider creates a provider from the assistant config section
func NewOllamaProvider(cfg config.AssistantConfig) *OllamaProvider {
	host := strings.TrimSuffix(cfg.OllamaHost, "/")
	if host == "" {
		host = defaultOllamaHost
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		// Local models can be slow to first token
		timeout = 2 * time.Minute
	}

	return &OllamaProvider{
		httpClient: &http.Client{Timeout: timeout},
		host:       host,
		model:      cfg.OllamaModel,
	}
}

// Name identifies the provider
func (p *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
}

// Complete sends the prompt pair and returns the model's reply
func (p *OllamaProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed ollamaChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("ollama chat failed: %s", parsed.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama chat failed with status %d", resp.StatusCode)
	}

	return strings.TrimSpace(parsed.Message.Content), nil
}

// NewProvider builds the configured provider
func NewProvider(cfg config.AssistantConfig) (appassistant.Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaProvider(cfg), nil
	default:
		return NewOpenAIProvider(cfg)
	}
}
