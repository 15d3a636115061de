package places

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// ResolveInput is the input for the place resolution tool
type ResolveInput struct {
	Location string `json:"location" description:"A colloquial or partial location name, e.g. 'the bay area'"`
}

// ResolveTool exposes geocoding to the agent
type ResolveTool struct {
	client *Client
}

func (t *ResolveTool) Name() string {
	return "resolve_place"
}

func (t *ResolveTool) Description() string {
	return "Normalizes a colloquial location name into a canonical place (formatted address, country code, coordinates) for region-scoped news queries. Arguments: location (string, required)."
}

func (t *ResolveTool) Execute(ctx context.Context, input *ResolveInput) (*Place, error) {
	if input == nil || input.Location == "" {
		return nil, fmt.Errorf("location is required")
	}
	return t.client.Resolve(ctx, input.Location)
}

// registerTools registers all places tools with the registry
func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		log.Warn(context.Background(), "[Places] Cannot register tools: genkit or registry is nil")
		return
	}

	resolveTool := &ResolveTool{client: c}
	registry.Register(genkit.DefineTool(gk, resolveTool.Name(), resolveTool.Description(),
		func(ctx *ai.ToolContext, input *ResolveInput) (*Place, error) {
			return resolveTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		location, ok := args["location"].(string)
		if !ok {
			return nil, fmt.Errorf("location is required and must be a string")
		}
		return resolveTool.Execute(ctx, &ResolveInput{Location: location})
	})

	log.Info(context.Background(), "[Places] Registered tool: resolve_place")
}
