package gateway

import (
	"context"
	"strings"

	"github.com/yungbote/gymcoach/internal/normalization"
)

type chatRequest struct {
	Message string `json:"message"`
}

// SendMessage sends only this message; the backend keeps no history.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &InvalidInputError{Field: "message", Reason: "message is empty"}
	}
	var reply string
	err := c.doJSON(ctx, OpChat, c.chatPath, chatRequest{Message: text}, func(obj map[string]any) error {
		env, err := unwrap(OpChat, obj, "response")
		if err != nil {
			return err
		}
		raw := env.Payload
		if env.Shape == normalization.ShapeFlat {
			raw = obj["response"]
		}
		s, ok := normalization.Text(raw)
		if !ok {
			return &SchemaError{Op: OpChat, Path: "response", Reason: "missing required field"}
		}
		reply = s
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
