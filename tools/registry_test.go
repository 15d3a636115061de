package tools_test

import (
	"context"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"

	"newsdesk/plugins/core"
	"newsdesk/tools"
)

func TestNewRegistry(t *testing.T) {
	reg := tools.NewRegistry()
	assert.NotNil(t, reg)
	assert.Empty(t, reg.GetTools())
	assert.Empty(t, reg.Names())
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	// Register a dummy tool
	reg.Register(genkit.DefineTool[*core.DateInput, string](
		gk,
		"testTool",
		"Test Description",
		func(ctx *ai.ToolContext, input *core.DateInput) (string, error) {
			return "ok", nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	})

	registered := reg.GetTools()
	assert.Len(t, registered, 1)
	assert.Equal(t, "testTool", registered[0].Definition().Name)
	assert.Equal(t, []string{"testTool"}, reg.Names())
}

func TestRegistry_ExecuteTool(t *testing.T) {
	ctx := context.Background()
	gk := genkit.Init(ctx)
	reg := tools.NewRegistry()

	reg.Register(genkit.DefineTool[*core.DateInput, string](
		gk,
		"echoArgs",
		"Returns the query argument",
		func(ctx *ai.ToolContext, input *core.DateInput) (string, error) {
			return "", nil
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return args["query"], nil
	})

	result, err := reg.ExecuteTool(ctx, "echoArgs", map[string]interface{}{"query": "hello"})
	assert.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestRegistry_ExecuteTool_NotFound(t *testing.T) {
	reg := tools.NewRegistry()

	_, err := reg.ExecuteTool(context.Background(), "missing", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "tool not found: missing")
}
