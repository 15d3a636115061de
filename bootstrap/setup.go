package bootstrap

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"gorm.io/gorm"

	"newsdesk/agents"
	"newsdesk/bootstrap/dashscope"
	"newsdesk/config"
	"newsdesk/log"
	"newsdesk/orm"
	"newsdesk/plugins"
	"newsdesk/plugins/core"
	"newsdesk/plugins/email"
	"newsdesk/plugins/places"
	"newsdesk/plugins/report"
	"newsdesk/plugins/sentiment"
	"newsdesk/plugins/tavily"
	dashscopeclient "newsdesk/providers/dashscope"
	"newsdesk/providers/gemini"
	ollamaclient "newsdesk/providers/ollama"
	"newsdesk/tools"
)

// App holds the initialized components of the application
type App struct {
	Newsroom *agents.Newsroom
	Genkit   *genkit.Genkit
	Registry *tools.Registry
	Model    ai.Model
	DB       *gorm.DB
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Open storage and drop any expired cached responses
	db, err := orm.Open(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if err := orm.CleanupCache(db); err != nil {
		log.Warnf(ctx, "Cache cleanup failed: %v", err)
	}

	// 2. Setup Genkit with the selected AI plugin. scorerLLM is the
	// direct client the sentiment tool prompts, matching the plugin.
	var gk *genkit.Genkit
	var model ai.Model
	var scorerLLM plugins.LLMClient

	switch cfg.AI.Plugin {
	case "ollama":
		log.Infof(ctx, "Using Ollama plugin (model: %s)", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		// Explicitly enable tool support on the chat model
		model = ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
		scorerLLM = ollamaclient.NewClient(cfg.AI.Ollama.BaseURL, cfg.AI.Ollama.Model)

	case "gemini":
		log.Infof(ctx, "Using Gemini plugin (model: %s)", cfg.AI.Gemini.Model)
		gk = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		model = googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model)

		geminiClient, err := gemini.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
		}
		scorerLLM = geminiClient

	default: // dashscope
		log.Infof(ctx, "Using DashScope plugin (model: %s)", cfg.AI.DashScope.Model)
		dsPlugin := &dashscope.DashScope{
			APIKey:  cfg.AI.DashScope.APIKey,
			BaseURL: cfg.AI.DashScope.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(dsPlugin))
		model = resolveDashScopeModel(gk, dsPlugin, cfg.AI.DashScope.Model)

		dsClient, err := dashscopeclient.NewClient(cfg.AI.DashScope.APIKey, cfg.AI.DashScope.BaseURL, cfg.AI.DashScope.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize DashScope client: %w", err)
		}
		scorerLLM = dsClient
	}

	// 3. Init tools registry and register tool plugins
	registry := tools.NewRegistry()

	tavily.NewClient(cfg.Search.TavilyAPIKey, gk, registry, cfg.Search.TimeoutSecs, cfg.Search.MaxResults, db)
	core.NewClient(gk, registry)
	sentiment.NewScorer(scorerLLM).RegisterTools(gk, registry)
	report.NewWriter(cfg.Reports.Dir, db).RegisterTools(gk, registry)
	email.NewMailer(cfg.SMTP, db).RegisterTools(gk, registry)

	if cfg.Maps.APIKey != "" {
		if _, err := places.NewClient(cfg.Maps.APIKey, gk, registry); err != nil {
			return nil, fmt.Errorf("failed to initialize places client: %w", err)
		}
	} else {
		log.Info(ctx, "GOOGLE_MAPS_API_KEY not set, place resolution disabled")
	}

	log.Infof(ctx, "Registered tools: %v", registry.Names())

	// 4. Init agents
	analyst := agents.NewAnalyst(gk, registry, model)
	newsroom := agents.NewNewsroom(analyst, db)

	return &App{
		Newsroom: newsroom,
		Genkit:   gk,
		Registry: registry,
		Model:    model,
		DB:       db,
	}, nil
}

// resolveDashScopeModel looks up one of the plugin's predefined models,
// defining the model on the fly for names outside that set.
func resolveDashScopeModel(gk *genkit.Genkit, plugin *dashscope.DashScope, name string) ai.Model {
	switch name {
	case "qwen-plus", "qwen-turbo", "qwen-max":
		return plugin.Model(gk, name)
	default:
		return plugin.DefineModelWithDefaults(name)
	}
}
