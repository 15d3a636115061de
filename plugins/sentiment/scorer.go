package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"newsdesk/log"
	"newsdesk/plugins"
)

const scorerPrompt = `You are a sentiment rater for news text. Classify the text below.

Respond with ONLY a JSON object in this exact format, no other text:
{"label": "positive|negative|neutral|mixed", "score": <float -1.0..1.0>, "confidence": <float 0.0..1.0>, "rationale": "<one sentence>"}

Text:
%s`

// Result is a sentiment classification of one piece of text
type Result struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Scorer classifies text sentiment by prompting an LLM directly
type Scorer struct {
	llm plugins.LLMClient
}

// NewScorer creates a sentiment scorer backed by the given LLM client
func NewScorer(llm plugins.LLMClient) *Scorer {
	return &Scorer{llm: llm}
}

// Score classifies the sentiment of text
func (s *Scorer) Score(ctx context.Context, text string) (*Result, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("sentiment scorer has no LLM client")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	resp, err := s.llm.GenerateContent(ctx, fmt.Sprintf(scorerPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("sentiment generation failed: %w", err)
	}

	result, err := parseResult(resp)
	if err != nil {
		log.Warnf(ctx, "[Sentiment] Unparseable model reply: %q", resp)
		return nil, err
	}
	return result, nil
}

// parseResult extracts the JSON object from a model reply. Models wrap
// JSON in markdown fences or preamble often enough that we scan for the
// first '{' and last '}' instead of decoding the raw reply.
func parseResult(reply string) (*Result, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var result Result
	if err := json.Unmarshal([]byte(reply[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment JSON: %w", err)
	}

	result.Label = strings.ToLower(strings.TrimSpace(result.Label))
	switch result.Label {
	case "positive", "negative", "neutral", "mixed":
	default:
		return nil, fmt.Errorf("unexpected sentiment label %q", result.Label)
	}

	// Clamp out-of-range values rather than rejecting the whole reply.
	result.Score = clamp(result.Score, -1, 1)
	result.Confidence = clamp(result.Confidence, 0, 1)

	return &result, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
