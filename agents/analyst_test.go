package agents

import (
	"context"
	"os"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/stretchr/testify/assert"

	"newsdesk/plugins/core"
	"newsdesk/tools"
)

func TestNewAnalyst(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	registry := tools.NewRegistry()

	analyst := NewAnalyst(gk, registry, nil)
	assert.NotNil(t, analyst)
	assert.NotNil(t, analyst.askUser)
	assert.Equal(t, "askUser", analyst.askUser.Definition().Name)
}

// Requires a local Ollama server; set OLLAMA_TEST_MODEL to run.
func TestAnalyst_Brief_Integration(t *testing.T) {
	model := os.Getenv("OLLAMA_TEST_MODEL")
	if model == "" {
		t.Skip("OLLAMA_TEST_MODEL not set")
	}

	ctx := context.Background()
	ollamaPlugin := &ollama.Ollama{
		ServerAddress: "http://localhost:11434",
	}
	gk := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

	m := ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
		Name: model,
		Type: "chat",
	}, &ai.ModelOptions{
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			SystemRole: true,
			Tools:      true,
		},
	})

	registry := tools.NewRegistry()
	core.NewClient(gk, registry)

	analyst := NewAnalyst(gk, registry, m)

	result, err := analyst.Brief(ctx, BriefRequest{
		UserQuery: "What date was yesterday?",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result)

	if result.NeedsClarification {
		t.Logf("Analyst asked: %s", result.Question)
	} else {
		t.Logf("Analyst answered: %s", result.Answer)
		assert.NotEmpty(t, result.Answer)
	}
}
