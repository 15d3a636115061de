package core

import (
	"github.com/firebase/genkit/go/genkit"

	"newsdesk/tools"
)

// Client manages the core set of tools
type Client struct {
	DateTool *DateTool
}

// NewClient initializes the core plugin and registers its tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry) *Client {
	return &Client{
		DateTool: NewDateTool(gk, registry),
	}
}
