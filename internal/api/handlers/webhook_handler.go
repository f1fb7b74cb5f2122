package handlers

import (
	"fmt"
	"net/url"
	"time"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// emptyTwiML acknowledges a webhook without instructing the provider to do
// anything. The real reply goes out through the REST API instead.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// WebhookHandler terminates the telephony provider's callbacks. Whatever
// happens inside, the provider always gets a 200 so it does not retry or
// play an error message to the caller.
type WebhookHandler struct {
	conversation *service.ConversationService
	baseURL      string
	seen         *cache.Cache
	logger       *zap.Logger
}

func NewWebhookHandler(conversation *service.ConversationService, baseURL string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		conversation: conversation,
		baseURL:      baseURL,
		seen:         cache.New(10*time.Minute, 30*time.Minute),
		logger:       logger,
	}
}

func (h *WebhookHandler) IncomingSMS(c *fiber.Ctx) error {
	return h.handleMessage(c, models.ChannelSMS)
}

func (h *WebhookHandler) IncomingWhatsApp(c *fiber.Ctx) error {
	return h.handleMessage(c, models.ChannelWhatsApp)
}

func (h *WebhookHandler) handleMessage(c *fiber.Ctx, channel models.Channel) error {
	msg := &dto.IncomingMessage{
		From:       c.FormValue("From"),
		To:         c.FormValue("To"),
		Body:       c.FormValue("Body"),
		Channel:    channel,
		MessageSid: c.FormValue("MessageSid"),
	}

	// Providers redeliver on slow responses; the same MessageSid must not
	// start a second conversation turn.
	if msg.MessageSid != "" {
		if _, dup := h.seen.Get(msg.MessageSid); dup {
			h.logger.Info("duplicate webhook ignored", zap.String("sid", msg.MessageSid))
			return twiML(c)
		}
		h.seen.Set(msg.MessageSid, struct{}{}, cache.DefaultExpiration)
	}

	if _, err := h.conversation.HandleIncomingMessage(c.Context(), msg); err != nil {
		h.logger.Error("incoming message failed",
			zap.String("channel", string(channel)),
			zap.Error(err))
	}

	return twiML(c)
}

// IncomingVoice answers a call with a greeting and points the provider at
// the per-caller configuration endpoint.
func (h *WebhookHandler) IncomingVoice(c *fiber.Ctx) error {
	from := c.FormValue("From")
	configURL := fmt.Sprintf("%s/api/call-config?from=%s", h.baseURL, url.QueryEscape(from))

	body := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Response><Say>Thanks for calling. Connecting you to our assistant now.</Say><Redirect method="GET">%s</Redirect></Response>`, configURL)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	return c.Status(fiber.StatusOK).SendString(body)
}

// StatusCallback receives delivery receipts and call status updates. They
// are logged and acknowledged.
func (h *WebhookHandler) StatusCallback(c *fiber.Ctx) error {
	h.logger.Info("provider status callback",
		zap.String("sid", c.FormValue("MessageSid")),
		zap.String("call_sid", c.FormValue("CallSid")),
		zap.String("status", c.FormValue("MessageStatus")+c.FormValue("CallStatus")))
	return twiML(c)
}

func twiML(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	return c.Status(fiber.StatusOK).SendString(emptyTwiML)
}
