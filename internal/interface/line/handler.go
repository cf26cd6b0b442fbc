package line

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	linemsg "github.com/yijuchen/cwabot/internal/infra/line"
)

// Handler terminates the LINE webhook. It verifies the signature, acks with
// 200 immediately and processes the events off the request goroutine, as the
// platform requires.
type Handler struct {
	channelSecret string
	bot           *Bot
	messenger     linemsg.Messenger
	logger        *slog.Logger
	wg            sync.WaitGroup
}

// NewHandler builds the webhook handler.
func NewHandler(channelSecret string, bot *Bot, messenger linemsg.Messenger, logger *slog.Logger) *Handler {
	return &Handler{
		channelSecret: channelSecret,
		bot:           bot,
		messenger:     messenger,
		logger:        logger.With("component", "line_webhook"),
	}
}

// Handle is the gin handler for POST /callback.
func (h *Handler) Handle(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("invalid webhook signature")
			c.Status(http.StatusBadRequest)
		} else {
			h.logger.Error("parse webhook request", "error", err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)

	// The request body is released once we return, so the events move to their
	// own slice before the async hop.
	events := make([]webhook.EventInterface, len(cb.Events))
	copy(events, cb.Events)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("panic in webhook event processing", "panic", r)
			}
		}()
		ctx := context.Background()
		for _, event := range events {
			h.processEvent(ctx, event)
		}
	}()
}

func (h *Handler) processEvent(ctx context.Context, event webhook.EventInterface) {
	var (
		replyToken string
		messages   []messaging_api.MessageInterface
	)

	switch e := event.(type) {
	case webhook.MessageEvent:
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			return
		}
		userID := sourceUserID(e.Source)
		if userID == "" {
			return
		}
		replyToken = e.ReplyToken
		messages = h.bot.HandleText(ctx, userID, text.Text)
	case webhook.PostbackEvent:
		// Rich menu taps carry the action keyword as postback data.
		userID := sourceUserID(e.Source)
		if userID == "" || e.Postback == nil {
			return
		}
		replyToken = e.ReplyToken
		messages = h.bot.HandleText(ctx, userID, e.Postback.Data)
	case webhook.FollowEvent:
		userID := sourceUserID(e.Source)
		if userID == "" {
			return
		}
		replyToken = e.ReplyToken
		messages = h.bot.HandleFollow(ctx, userID)
	default:
		h.logger.Debug("unsupported webhook event", "type", eventTypeName(event))
		return
	}

	if len(messages) == 0 {
		return
	}
	if err := h.messenger.Reply(replyToken, messages); err != nil {
		h.logger.Error("reply failed", "error", err)
	}
}

// Shutdown waits for in-flight event processing, bounded by ctx.
func (h *Handler) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.wg.Wait()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func sourceUserID(source webhook.SourceInterface) string {
	if user, ok := source.(webhook.UserSource); ok {
		return user.UserId
	}
	return ""
}

func eventTypeName(event webhook.EventInterface) string {
	switch event.(type) {
	case webhook.UnfollowEvent:
		return "unfollow"
	case webhook.JoinEvent:
		return "join"
	case webhook.LeaveEvent:
		return "leave"
	default:
		return "other"
	}
}
