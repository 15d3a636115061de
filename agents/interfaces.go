package agents

import "context"

// BriefRequest contains the user's query and conversation context
type BriefRequest struct {
	UserQuery string
	History   string
}

// BriefResult contains the consolidated answer or a clarifying question
type BriefResult struct {
	Answer             string
	NeedsClarification bool
	Question           string
}

// Briefer turns a user query into a consolidated answer
type Briefer interface {
	Brief(ctx context.Context, req BriefRequest) (*BriefResult, error)
}
