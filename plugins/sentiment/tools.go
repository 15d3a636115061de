package sentiment

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// AnalyzeInput is the input for the sentiment tool
type AnalyzeInput struct {
	Text string `json:"text" description:"The text to classify, e.g. a headline or article snippet"`
}

// AnalyzeTool exposes the scorer to the agent
type AnalyzeTool struct {
	scorer *Scorer
}

func (t *AnalyzeTool) Name() string {
	return "analyze_sentiment"
}

func (t *AnalyzeTool) Description() string {
	return "Classifies the sentiment of a piece of text (headline, snippet, or article) as positive, negative, neutral, or mixed, with a score in [-1,1] and a one-line rationale. Arguments: text (string, required)."
}

func (t *AnalyzeTool) Execute(ctx context.Context, input *AnalyzeInput) (*Result, error) {
	if input == nil || input.Text == "" {
		return nil, fmt.Errorf("text is required")
	}
	return t.scorer.Score(ctx, input.Text)
}

// RegisterTools registers the sentiment tool with the registry
func (s *Scorer) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		log.Warn(context.Background(), "[Sentiment] Cannot register tools: genkit or registry is nil")
		return
	}

	analyzeTool := &AnalyzeTool{scorer: s}
	registry.Register(genkit.DefineTool(gk, analyzeTool.Name(), analyzeTool.Description(),
		func(ctx *ai.ToolContext, input *AnalyzeInput) (*Result, error) {
			return analyzeTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		text, ok := args["text"].(string)
		if !ok {
			return nil, fmt.Errorf("text is required and must be a string")
		}
		return analyzeTool.Execute(ctx, &AnalyzeInput{Text: text})
	})

	log.Info(context.Background(), "[Sentiment] Registered tool: analyze_sentiment")
}
