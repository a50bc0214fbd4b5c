package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
)

// Gemini is a generation client for the Google Gemini API.
type Gemini struct {
	client      *genai.Client
	modelName   string
	temperature float32
	maxTokens   int
}

// NewGemini creates a Gemini generation client.
func NewGemini(ctx context.Context, model, apiKey string, temperature float32, maxTokens int) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:      client,
		modelName:   model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Generate sends the structured prompt to Gemini, carrying the system
// instruction in the dedicated system slot, and returns the text answer.
// A fresh model handle is configured per call so concurrent callers never
// share mutable model state.
func (g *Gemini) Generate(ctx context.Context, prompt schema.Prompt) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(int32(g.maxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt.System)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response was empty or in an unexpected format")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini returned a non-text part")
	}

	return string(text), nil
}

var _ interfaces.LLM = (*Gemini)(nil)
