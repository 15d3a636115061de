package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"newsdesk/plugins"
)

// DefaultBaseURL is the local Ollama server address
const DefaultBaseURL = "http://localhost:11434"

// Client handles requests against a local Ollama server's generate
// endpoint. It is the offline backend for single-prompt calls; the
// agent loop talks to Ollama through the genkit plugin instead.
type Client struct {
	BaseURL string
	Model   string

	httpClient *http.Client
}

// Ensure Client satisfies LLMClient
var _ plugins.LLMClient = (*Client)(nil)

// NewClient creates a new Ollama generate client
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    baseURL,
		Model:      model,
		httpClient: &http.Client{},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// GenerateContent sends a prompt and returns the completion text.
// This satisfies the plugins.LLMClient interface used by the sentiment
// scorer. Streaming is disabled so the reply arrives as one object.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.Model == "" {
		return "", fmt.Errorf("model is required")
	}

	payload, err := json.Marshal(generateRequest{
		Model:  c.Model,
		Prompt: prompt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if !genResp.Done {
		return "", fmt.Errorf("ollama returned a partial response")
	}

	return genResp.Response, nil
}
