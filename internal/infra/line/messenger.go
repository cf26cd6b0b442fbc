// Package line wraps the LINE Messaging API client behind the small surface
// the bot needs: reply within a webhook turn, push outside one.
package line

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	apperrors "github.com/yijuchen/cwabot/pkg/errors"
)

// Messenger sends messages to LINE users.
type Messenger interface {
	Reply(replyToken string, messages []messaging_api.MessageInterface) error
	Push(to string, messages []messaging_api.MessageInterface) error
}

// Client is the production Messenger backed by the Messaging API.
type Client struct {
	api    *messaging_api.MessagingApiAPI
	logger *slog.Logger
}

// NewClient builds a Messaging API client from the channel token.
func NewClient(channelToken string, logger *slog.Logger) (*Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	return &Client{
		api:    api,
		logger: logger.With("component", "line_messenger"),
	}, nil
}

// Reply answers one webhook event. Reply tokens are single use; a consumed
// token surfaces as an upstream error.
func (c *Client) Reply(replyToken string, messages []messaging_api.MessageInterface) error {
	if replyToken == "" {
		return apperrors.Wrap("line_send_error", "empty reply token", nil)
	}
	if _, err := c.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	}); err != nil {
		return apperrors.Wrap("line_send_error", "reply message", err)
	}
	return nil
}

// Push sends messages outside a webhook turn. The retry key makes scheduler
// retries idempotent on the LINE side.
func (c *Client) Push(to string, messages []messaging_api.MessageInterface) error {
	if _, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: messages,
	}, uuid.NewString()); err != nil {
		return apperrors.Wrap("line_send_error", "push message", err)
	}
	c.logger.Info("push sent", "to", to, "messages", len(messages))
	return nil
}

var _ Messenger = (*Client)(nil)
