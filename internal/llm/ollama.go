package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	olla "github.com/ollama/ollama/api"

	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
)

// Ollama is a generation client for a locally hosted Ollama server.
type Ollama struct {
	client      *olla.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOllama creates an Ollama generation client. An empty baseURL defaults
// to the standard local Ollama address.
func NewOllama(model, baseURL string, temperature float32, maxTokens int) (*Ollama, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: 120 * time.Second,
	}

	return &Ollama{
		client:      olla.NewClient(parsedURL, hc),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Generate sends the structured prompt as a system plus user message pair
// and returns the model's text answer.
func (o *Ollama) Generate(ctx context.Context, prompt schema.Prompt) (string, error) {
	stream := false
	var sb strings.Builder

	err := o.client.Chat(ctx, &olla.ChatRequest{
		Model: o.model,
		Messages: []olla.Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Options: map[string]interface{}{
			"temperature": o.temperature,
			"num_predict": o.maxTokens,
		},
		Stream: &stream,
	}, func(resp olla.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content with ollama: %w", err)
	}

	return sb.String(), nil
}

var _ interfaces.LLM = (*Ollama)(nil)
