package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"newsdesk/orm"
)

func newTestClient(baseURL string, db *gorm.DB) *Client {
	return &Client{
		BaseURL:    baseURL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		maxResults: 5,
		db:         db,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, orm.Migrate(db))
	return db
}

func TestSearch_AppliesDefaults(t *testing.T) {
	var received SearchRequest
	var authHeader string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)

		json.NewEncoder(w).Encode(SearchResponse{
			Query: received.Query,
			Results: []SearchResult{
				{Title: "Chip stocks rally", URL: "https://example.com/a", Content: "...", Score: 0.91},
			},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, nil)

	resp, err := client.Search(context.Background(), &SearchRequest{Query: "semiconductor news"})
	assert.NoError(t, err)
	assert.Len(t, resp.Results, 1)
	assert.Equal(t, "Chip stocks rally", resp.Results[0].Title)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "basic", received.SearchDepth)
	assert.Equal(t, "news", received.Topic)
	assert.Equal(t, 5, received.MaxResults)
}

func TestSearch_PreservesExplicitOptions(t *testing.T) {
	var received SearchRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, nil)

	_, err := client.Search(context.Background(), &SearchRequest{
		Query:       "ECB rate decision",
		SearchDepth: "advanced",
		MaxResults:  3,
		Topic:       "finance",
		TimeRange:   "week",
	})
	assert.NoError(t, err)
	assert.Equal(t, "advanced", received.SearchDepth)
	assert.Equal(t, 3, received.MaxResults)
	assert.Equal(t, "finance", received.Topic)
	assert.Equal(t, "week", received.TimeRange)
}

func TestSearch_Validation(t *testing.T) {
	client := newTestClient("http://unused", nil)

	_, err := client.Search(context.Background(), nil)
	assert.Error(t, err)

	_, err = client.Search(context.Background(), &SearchRequest{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestSearch_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, nil)

	_, err := client.Search(context.Background(), &SearchRequest{Query: "anything"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearch_ServesSecondCallFromCache(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(SearchResponse{
			Results: []SearchResult{{Title: "Cached headline", URL: "https://example.com/c"}},
		})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, newTestDB(t))

	first, err := client.Search(context.Background(), &SearchRequest{Query: "ai regulation"})
	assert.NoError(t, err)

	second, err := client.Search(context.Background(), &SearchRequest{Query: "ai regulation"})
	assert.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Results, second.Results)

	// Different arguments miss the cache.
	_, err = client.Search(context.Background(), &SearchRequest{Query: "ai regulation", TimeRange: "day"})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSearch_NilDBSkipsCache(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(SearchResponse{})
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, nil)

	for i := 0; i < 2; i++ {
		_, err := client.Search(context.Background(), &SearchRequest{Query: "same query"})
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
