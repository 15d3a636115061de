package tavily

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// NewsSearchTool implements the news search tool
type NewsSearchTool struct {
	client *Client
}

func (t *NewsSearchTool) Name() string {
	return "search_news"
}

func (t *NewsSearchTool) Description() string {
	return "Searches the web for recent news using Tavily. Returns headlines with URLs, snippets, and published dates. Arguments: query (string, required), max_results (int: 1-20, optional), time_range (string: day/week/month/year, optional), topic (string: news/general/finance, optional), include_answer (bool, optional)."
}

func (t *NewsSearchTool) Execute(ctx context.Context, input *SearchRequest) (*SearchResponse, error) {
	inputJSON, _ := json.Marshal(input)
	log.Debugf(ctx, "[Tavily] NewsSearchTool executing with input: %s", string(inputJSON))

	if t.client == nil {
		return nil, fmt.Errorf("tavily client not initialized")
	}
	if input.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	resp, err := t.client.Search(ctx, input)
	if err != nil {
		log.Errorf(ctx, "[Tavily] NewsSearchTool failed: %v", err)
		return nil, err
	}

	log.Debugf(ctx, "[Tavily] NewsSearchTool completed successfully. Found %d results", len(resp.Results))

	return resp, nil
}

// registerTools registers all Tavily tools with the registry
func (c *Client) registerTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		log.Warn(context.Background(), "[Tavily] Cannot register tools: genkit or registry is nil")
		return
	}

	searchTool := &NewsSearchTool{client: c}
	registry.Register(genkit.DefineTool(gk, searchTool.Name(), searchTool.Description(),
		func(ctx *ai.ToolContext, input *SearchRequest) (*SearchResponse, error) {
			return searchTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		// Adapter for generic registry execution
		query, ok := args["query"].(string)
		if !ok {
			return nil, fmt.Errorf("query is required and must be a string")
		}

		req := &SearchRequest{
			Query: query,
		}

		if depth, ok := args["search_depth"].(string); ok {
			req.SearchDepth = depth
		}
		if maxResults, ok := args["max_results"].(float64); ok {
			req.MaxResults = int(maxResults)
		}
		if topic, ok := args["topic"].(string); ok {
			req.Topic = topic
		}
		if timeRange, ok := args["time_range"].(string); ok {
			req.TimeRange = timeRange
		}
		if startDate, ok := args["start_date"].(string); ok {
			req.StartDate = startDate
		}
		if endDate, ok := args["end_date"].(string); ok {
			req.EndDate = endDate
		}
		if includeAnswer, ok := args["include_answer"].(bool); ok {
			req.IncludeAnswer = includeAnswer
		}

		return searchTool.Execute(ctx, req)
	})

	log.Info(context.Background(), "[Tavily] Registered tool: search_news")
}
