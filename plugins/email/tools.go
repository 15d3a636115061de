package email

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/log"
	"newsdesk/tools"
)

// SendInput is the input for the email tool
type SendInput struct {
	To             string `json:"to" description:"Recipient email address"`
	Subject        string `json:"subject" description:"Email subject line"`
	Body           string `json:"body" description:"Plain-text email body"`
	AttachmentPath string `json:"attachment_path,omitempty" description:"Optional absolute path of a report file to attach, as returned by save_report"`
}

// SendOutput confirms a delivery to the model
type SendOutput struct {
	MessageID string `json:"message_id"`
	To        string `json:"to"`
}

// SendTool exposes the mailer to the agent
type SendTool struct {
	mailer *Mailer
}

func (t *SendTool) Name() string {
	return "send_email"
}

func (t *SendTool) Description() string {
	return "Sends an email through the configured SMTP relay, optionally attaching a previously saved report file. Arguments: to (string, required), subject (string, required), body (string, required), attachment_path (string, optional)."
}

func (t *SendTool) Execute(ctx context.Context, input *SendInput) (*SendOutput, error) {
	if input == nil || input.To == "" {
		return nil, fmt.Errorf("to is required")
	}

	messageID, err := t.mailer.Send(ctx, &Message{
		To:             input.To,
		Subject:        input.Subject,
		Body:           input.Body,
		AttachmentPath: input.AttachmentPath,
	})
	if err != nil {
		log.Errorf(ctx, "[Email] SendTool failed: %v", err)
		return nil, err
	}

	return &SendOutput{MessageID: messageID, To: input.To}, nil
}

// RegisterTools registers the email tool with the registry
func (m *Mailer) RegisterTools(gk *genkit.Genkit, registry *tools.Registry) {
	if gk == nil || registry == nil {
		log.Warn(context.Background(), "[Email] Cannot register tools: genkit or registry is nil")
		return
	}

	sendTool := &SendTool{mailer: m}
	registry.Register(genkit.DefineTool(gk, sendTool.Name(), sendTool.Description(),
		func(ctx *ai.ToolContext, input *SendInput) (*SendOutput, error) {
			return sendTool.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input := &SendInput{}
		input.To, _ = args["to"].(string)
		input.Subject, _ = args["subject"].(string)
		input.Body, _ = args["body"].(string)
		input.AttachmentPath, _ = args["attachment_path"].(string)
		return sendTool.Execute(ctx, input)
	})

	log.Info(context.Background(), "[Email] Registered tool: send_email")
}
