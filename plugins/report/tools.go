package report

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// SaveInput is the input for the report tool
type SaveInput struct {
	Title   string `json:"title" description:"Report title, used for the heading and filename"`
	Content string `json:"content" description:"Report body in markdown"`
}

// SaveOutput is returned to the model so it can chain the path into
// the email tool.
type SaveOutput struct {
	Path string `json:"path"`
}

// SaveTool exposes the writer to the agent
type SaveTool struct {
	writer *Writer
}

func (t *SaveTool) Name() string {
	return "save_report"
}

func (t *SaveTool) Description() string {
	return "Writes a markdown report file to the reports directory and returns its absolute path. Use this to persist a briefing before emailing it. Arguments: title (string, required), content (string, required, markdown)."
}

func (t *SaveTool) Execute(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("input is required")
	}
	path, err := t.writer.Write(ctx, input.Title, input.Content)
	if err != nil {
		return nil, err
	}
	return &SaveOutput{Path: path}, nil
}

// RegisterTools registers the report tool with the registry
func (w *Writer) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		log.Warn(context.Background(), "[Report] Cannot register tools: genkit or registry is nil")
		return
	}

	saveTool := &SaveTool{writer: w}
	registry.Register(genkit.DefineTool(gk, saveTool.Name(), saveTool.Description(),
		func(ctx *ai.ToolContext, input *SaveInput) (*SaveOutput, error) {
			return saveTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		title, _ := args["title"].(string)
		content, _ := args["content"].(string)
		return saveTool.Execute(ctx, &SaveInput{Title: title, Content: content})
	})

	log.Info(context.Background(), "[Report] Registered tool: save_report")
}
