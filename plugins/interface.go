package plugins

import "context"

// LLMClient defines the interface for direct LLM interaction.
// The sentiment scorer calls the model through this rather than through
// the agent loop, so any provider backend can serve it.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
