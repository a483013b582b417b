package llm

import (
	"context"
)

// Provider is the interface for all LLM providers used by the analysis
// pipeline. Options carry per-call knobs (model, api_key, response_format);
// every provider reads only the keys it understands.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

type OpenAIProvider struct{}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	// OpenAI specific API call logic
	return "Not implemented: OpenAI Response", nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return "OpenAI Style: " + raw // Template for GPT-specific prompting
}

type KimiProvider struct{}

func (p *KimiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return "Not implemented: Kimi Response", nil
}

func (p *KimiProvider) AdaptInstructions(raw string) string {
	return "Kimi Style: " + raw // Kimi is optimized for long-context document analysis
}
