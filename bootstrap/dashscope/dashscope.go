// Package dashscope provides a Firebase Genkit plugin for DashScope's
// OpenAI-compatible API.
package dashscope

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

const provider = "dashscope"

// DefaultBaseURL is DashScope's OpenAI-compatible endpoint
const DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// DashScope is a plugin that provides integration with DashScope's Qwen models.
type DashScope struct {
	// APIKey is the API key for the DashScope API. If empty, the value of
	// the environment variable "DASHSCOPE_API_KEY" will be consulted.
	APIKey string
	// BaseURL is the base URL for the DashScope API. Defaults to DefaultBaseURL.
	BaseURL string

	openAICompatible *compat_oai.OpenAICompatible
}

// Name implements genkit.Plugin.
func (d *DashScope) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (d *DashScope) Init(ctx context.Context) []api.Action {
	apiKey := d.APIKey
	baseURL := d.BaseURL

	if apiKey == "" {
		apiKey = os.Getenv("DASHSCOPE_API_KEY")
	}
	if apiKey == "" {
		panic("dashscope plugin initialization failed: apiKey is required (set DASHSCOPE_API_KEY or pass APIKey)")
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if d.openAICompatible == nil {
		d.openAICompatible = &compat_oai.OpenAICompatible{}
	}

	d.openAICompatible.Opts = []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}

	d.openAICompatible.Provider = provider
	compatActions := d.openAICompatible.Init(ctx)

	var actions []api.Action
	actions = append(actions, compatActions...)

	// define default models
	supportedModels := map[string]ai.ModelOptions{
		"qwen-plus": {
			Label:    "DashScope Qwen Plus",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"qwen-plus"},
		},
		"qwen-turbo": {
			Label:    "DashScope Qwen Turbo",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"qwen-turbo"},
		},
		"qwen-max": {
			Label:    "DashScope Qwen Max",
			Supports: &compat_oai.Multimodal,
			Versions: []string{"qwen-max"},
		},
	}

	for model, opts := range supportedModels {
		actions = append(actions, d.DefineModel(model, opts).(api.Action))
	}

	return actions
}

// Model returns a model by name.
func (d *DashScope) Model(g *genkit.Genkit, name string) ai.Model {
	return d.openAICompatible.Model(g, api.NewName(provider, name))
}

// DefineModel defines a model with the given ID and options.
func (d *DashScope) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return d.openAICompatible.DefineModel(provider, id, opts)
}

// DefineModelWithDefaults defines a model with default options.
func (d *DashScope) DefineModelWithDefaults(id string) ai.Model {
	return d.DefineModel(id, ai.ModelOptions{
		Label:    "DashScope " + id,
		Supports: &compat_oai.Multimodal,
	})
}

// ListActions returns a list of actions provided by this plugin.
func (d *DashScope) ListActions(ctx context.Context) []api.ActionDesc {
	return d.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (d *DashScope) ResolveAction(atype api.ActionType, name string) api.Action {
	return d.openAICompatible.ResolveAction(atype, name)
}
