package agents

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	logcontext "newsdesk/context"
	"newsdesk/log"
	"newsdesk/orm"
)

// Newsroom is the per-turn orchestrator: it runs the analyst, surfaces
// clarifying questions, and archives completed briefings.
type Newsroom struct {
	analyst Briefer
	db      *gorm.DB
}

// NewNewsroom creates a new Newsroom. db is optional; when set,
// completed briefings are archived.
func NewNewsroom(analyst Briefer, db *gorm.DB) *Newsroom {
	return &Newsroom{
		analyst: analyst,
		db:      db,
	}
}

// HandleQuery processes one user turn end to end. The second return
// value reports whether the answer is a clarifying question the user
// should respond to rather than a completed briefing.
func (n *Newsroom) HandleQuery(ctx context.Context, userQuery, history string) (string, bool, error) {
	requestID := logcontext.NewRequestID()
	ctx = logcontext.WithRequestID(ctx, requestID)

	log.Infof(ctx, "Handling query: %s", userQuery)

	res, err := n.analyst.Brief(ctx, BriefRequest{
		UserQuery: userQuery,
		History:   history,
	})
	if err != nil {
		return "", false, fmt.Errorf("analyst error: %w", err)
	}

	if res.NeedsClarification {
		log.Infof(ctx, "Analyst requests clarification: %q", res.Question)
		return res.Question, true, nil
	}

	if n.db != nil {
		briefing := &orm.Briefing{
			RequestID: requestID,
			Query:     userQuery,
			Answer:    res.Answer,
		}
		if err := orm.CreateBriefing(n.db, briefing); err != nil {
			// Archiving is best effort; the answer still stands.
			log.Warnf(ctx, "Failed to archive briefing: %v", err)
		}
	}

	return res.Answer, false, nil
}
