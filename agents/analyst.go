package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// Analyst runs the tool-calling loop using Genkit's native tool calling
type Analyst struct {
	genkit   *genkit.Genkit
	registry *tools.Registry
	model    ai.Model
	askUser  ai.Tool
}

// Ensure Analyst satisfies Briefer
var _ Briefer = (*Analyst)(nil)

// AskUserRequest is the input for the askUser tool
type AskUserRequest struct {
	Question string `json:"question" description:"The clarifying question to ask the user"`
}

const analystSystemPrompt = `You are a news desk assistant. Your goal is to answer the user's request with current, sourced information.

WORKFLOW:
1. Gather information using tools ONLY as needed:
   - Use resolve_date to turn relative timeframes ("this week", "since Monday") into concrete dates before searching
   - Use resolve_place to normalize colloquial locations before a region-scoped search (when available)
   - Use search_news for headlines; cite the returned URLs in your answer
   - Use analyze_sentiment when the user asks how the news "feels", or asks for a sentiment report
2. Produce artifacts ONLY when the user asks for them:
   - Use save_report to persist a markdown briefing; it returns the file path
   - Use send_email to deliver a briefing, passing the saved report path as attachment_path when a report was written
3. Use askUser ONLY if critical information is truly missing (e.g. the user asked to email a report without saying to whom)

CRITICAL RULES:
- Never invent headlines, URLs, or sentiment values; everything you report must come from tool output
- When done, respond with the final answer as plain text for a terminal: a short summary, then the headlines with their URLs, then any sentiment findings
- Mention the report path or email recipient in your answer when you produced those artifacts`

// NewAnalyst creates a new Analyst with Genkit native tool calling
func NewAnalyst(gk *genkit.Genkit, registry *tools.Registry, model ai.Model) *Analyst {
	// Define the askUser tool for clarifications
	askUser := genkit.DefineTool(gk, "askUser", "Ask the user a clarifying question when you need more information to complete the request.",
		func(ctx *ai.ToolContext, req *AskUserRequest) (string, error) {
			// This tool interrupts the flow to ask the user a question
			return "", ctx.Interrupt(&ai.InterruptOptions{
				Metadata: map[string]any{
					"question": req.Question,
				},
			})
		},
	)

	return &Analyst{
		genkit:   gk,
		registry: registry,
		model:    model,
		askUser:  askUser,
	}
}

// Brief answers the user query, dispatching to tools as the model decides
func (a *Analyst) Brief(ctx context.Context, req BriefRequest) (*BriefResult, error) {
	log.Infof(ctx, "Analyst: briefing for query: %s", req.UserQuery)

	var toolRefs []ai.ToolRef
	if a.registry != nil {
		for _, tool := range a.registry.GetTools() {
			toolRefs = append(toolRefs, tool)
		}
	}
	toolRefs = append(toolRefs, a.askUser)
	log.Debugf(ctx, "Analyst: %d tools available (including askUser)", len(toolRefs))

	// Inject current date so relative timeframes have an anchor
	systemPrompt := fmt.Sprintf("Today is %s.\n%s", time.Now().Format("2006-01-02"), analystSystemPrompt)

	prompt := req.UserQuery
	if req.History != "" {
		prompt = fmt.Sprintf("Conversation so far:\n%s\nUser: %s", req.History, req.UserQuery)
	}

	response, err := genkit.Generate(ctx,
		a.genkit,
		ai.WithModel(a.model),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(prompt),
		ai.WithTools(toolRefs...),
		ai.WithMaxTurns(15), // Automatic iteration limit
	)
	if err != nil {
		log.Errorf(ctx, "Analyst: generate error: %v", err)
		return nil, fmt.Errorf("briefing failed: %w", err)
	}

	// Handle interrupts (askUser tool calls)
	if response.FinishReason == ai.FinishReasonInterrupted {
		for _, part := range response.Interrupts() {
			if part.ToolRequest.Name == "askUser" {
				question := part.ToolRequest.Input.(map[string]any)["question"]
				log.Infof(ctx, "Analyst: asking user: %s", question)
				return &BriefResult{
					NeedsClarification: true,
					Question:           fmt.Sprintf("%v", question),
				}, nil
			}
		}
	}

	text := strings.TrimSpace(response.Text())
	if text == "" {
		return nil, fmt.Errorf("model returned an empty answer")
	}

	log.Debugf(ctx, "Analyst: final answer: %q", text)

	return &BriefResult{Answer: text}, nil
}
