package tavily

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"gorm.io/gorm"

	"newsdesk/log"
	"newsdesk/orm"
	"newsdesk/tools"
)

const (
	DefaultBaseURL = "https://api.tavily.com"

	// cacheTTL bounds how stale a cached news search may be.
	cacheTTL = 10 * time.Minute
)

// Client is the Tavily API client
type Client struct {
	BaseURL string

	apiKey     string
	httpClient *http.Client
	maxResults int
	db         *gorm.DB
}

// NewClient creates a new Tavily client and registers its tools.
// db is optional: when set, search responses are cached through the
// storage layer.
func NewClient(apiKey string, gk *genkit.Genkit, registry *tools.Registry, timeout, maxResults int, db *gorm.DB) *Client {
	if apiKey == "" {
		log.Warn(context.Background(), "Tavily API key is empty, news search will not work properly")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	client := &Client{
		BaseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		maxResults: maxResults,
		db:         db,
	}

	client.registerTools(gk, registry)

	return client
}

// SearchRequest represents a Tavily search request
type SearchRequest struct {
	Query          string   `json:"query" description:"The search query to execute"`
	SearchDepth    string   `json:"search_depth,omitempty" description:"Search depth: basic or advanced (default: basic)"`
	MaxResults     int      `json:"max_results,omitempty" description:"Maximum number of results (1-20)"`
	Topic          string   `json:"topic,omitempty" description:"Search category: news, general, or finance (default: news)"`
	TimeRange      string   `json:"time_range,omitempty" description:"Time range: day, week, month, or year"`
	StartDate      string   `json:"start_date,omitempty" description:"Start date in YYYY-MM-DD format"`
	EndDate        string   `json:"end_date,omitempty" description:"End date in YYYY-MM-DD format"`
	IncludeAnswer  bool     `json:"include_answer,omitempty" description:"Include an LLM-generated answer"`
	IncludeDomains []string `json:"include_domains,omitempty" description:"Domains to specifically include"`
	ExcludeDomains []string `json:"exclude_domains,omitempty" description:"Domains to specifically exclude"`
}

// SearchResult represents a single search result
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate *string `json:"published_date,omitempty"`
}

// SearchResponse represents the Tavily search response
type SearchResponse struct {
	Query        string         `json:"query"`
	Answer       string         `json:"answer,omitempty"`
	Results      []SearchResult `json:"results"`
	ResponseTime string         `json:"response_time"`
	RequestID    string         `json:"request_id"`
}

// Search performs a Tavily search. News topic is the default so relative
// time ranges and published dates behave the way headline queries expect.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	if req.SearchDepth == "" {
		req.SearchDepth = "basic"
	}
	if req.MaxResults == 0 {
		req.MaxResults = c.maxResults
	}
	if req.Topic == "" {
		req.Topic = "news"
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if cached := c.cachedResponse(ctx, jsonData); cached != nil {
		return cached, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/search", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debugf(ctx, "[Tavily] Sending search request: query=%s, topic=%s, max_results=%d", req.Query, req.Topic, req.MaxResults)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %s", resp.Status)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debugf(ctx, "[Tavily] Search completed successfully: %d results found", len(searchResp.Results))

	c.storeResponse(ctx, jsonData, &searchResp)

	return &searchResp, nil
}

// CacheKey derives the storage cache key for a marshaled search request.
func CacheKey(requestJSON []byte) string {
	return fmt.Sprintf("tavily:search:%x", sha256.Sum256(requestJSON))
}

func (c *Client) cachedResponse(ctx context.Context, requestJSON []byte) *SearchResponse {
	if c.db == nil {
		return nil
	}
	entry, err := orm.GetCacheEntry(c.db, CacheKey(requestJSON))
	if err != nil {
		// Miss or storage error: fall through to a live search.
		return nil
	}
	var cached SearchResponse
	if err := json.Unmarshal(entry.Value, &cached); err != nil {
		log.Warnf(ctx, "[Tavily] Dropping undecodable cache entry: %v", err)
		return nil
	}
	log.Debugf(ctx, "[Tavily] Serving search from cache: %d results", len(cached.Results))
	return &cached
}

func (c *Client) storeResponse(ctx context.Context, requestJSON []byte, resp *SearchResponse) {
	if c.db == nil {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := orm.SetCacheEntry(c.db, CacheKey(requestJSON), payload, cacheTTL); err != nil {
		log.Warnf(ctx, "[Tavily] Failed to cache search response: %v", err)
	}
}
