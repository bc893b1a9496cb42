package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/practiq/backend/internal/domain/client"
	"github.com/practiq/backend/internal/domain/shared"
)

// Provider generates a reply for a chat prompt. Implementations wrap an
// OpenAI-compatible API or a local Ollama server; which one runs is a
// deployment decision, there is no fallback between them.
type Provider interface {
	// Name identifies the provider in responses and logs
	Name() string

	// Complete generates a reply for the prompt
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ReplyCache caches assistant replies keyed by prompt hash
type ReplyCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, reply string, ttl time.Duration)
}

// ChatRequest is a question for the assistant, optionally scoped to a client
type ChatRequest struct {
	Message   string `json:"message" binding:"required,min=1,max=4000"`
	ClientRef string `json:"client_ref" binding:"omitempty,max=20"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Reply    string `json:"reply"`
	Provider string `json:"provider"`
	Cached   bool   `json:"cached"`
}

const systemPrompt = `You are an assistant for an accountancy practice. Answer questions about clients, engagements and statutory filings concisely and factually. If you do not know, say so; never invent figures or deadlines.`

const replyTTL = 15 * time.Minute

// Service answers practice questions, enriching the prompt with client
// context when a reference is supplied
type Service struct {
	provider   Provider
	cache      ReplyCache
	clientRepo client.Repository
}

// NewService creates a new assistant Service
func NewService(provider Provider, cache ReplyCache, clientRepo client.Repository) *Service {
	return &Service{
		provider:   provider,
		cache:      cache,
		clientRepo: clientRepo,
	}
}

// Chat answers a question. Identical prompts within the cache TTL get
// the cached reply.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	prompt := req.Message
	if req.ClientRef != "" {
		c, err := s.clientRepo.FindByRef(ctx, strings.ToUpper(req.ClientRef))
		if err != nil {
			return nil, err
		}
		prompt = fmt.Sprintf("Client context: %s\n\nQuestion: %s", clientContext(c), req.Message)
	}

	key := cacheKey(prompt)
	if s.cache != nil {
		if reply, ok := s.cache.Get(ctx, key); ok {
			return &ChatResponse{Reply: reply, Provider: s.provider.Name(), Cached: true}, nil
		}
	}

	reply, err := s.provider.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, shared.NewDomainError("ASSISTANT_UNAVAILABLE", "The assistant could not answer")
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, reply, replyTTL)
	}

	return &ChatResponse{Reply: reply, Provider: s.provider.Name(), Cached: false}, nil
}

// clientContext renders the facts the model may use about a client
func clientContext(c *client.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "reference %s, %s (%s), status %s, portfolio %d",
		c.Ref, c.Name, c.Type, c.Status, c.PortfolioCode)
	if c.CompanyNumber != "" {
		fmt.Fprintf(&b, ", company number %s", c.CompanyNumber)
	}
	if c.VATNumber != "" {
		fmt.Fprintf(&b, ", VAT registered (%s)", c.VATNumber)
	}
	return b.String()
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "assistant:reply:" + hex.EncodeToString(sum[:])
}
