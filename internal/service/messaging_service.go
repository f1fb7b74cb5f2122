package service

import (
	"context"
	"fmt"
	"time"

	"dojoflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageSender delivers one message through the telephony provider and
// returns the provider's message id.
type MessageSender interface {
	Send(ctx context.Context, from, to, body string) (string, error)
}

// InteractionStore is the persistence surface for the audit log.
type InteractionStore interface {
	Create(ctx context.Context, it *models.Interaction) error
	ListRecent(ctx context.Context, userKey string, limit int) ([]*models.Interaction, error)
}

type MessagingService struct {
	sender       MessageSender
	interactions InteractionStore
	fromNumber   string
	logger       *zap.Logger
}

func NewMessagingService(sender MessageSender, interactions InteractionStore, fromNumber string, logger *zap.Logger) *MessagingService {
	return &MessagingService{
		sender:       sender,
		interactions: interactions,
		fromNumber:   fromNumber,
		logger:       logger,
	}
}

// SendSMS delivers a text message and logs the outbound interaction against
// the recipient's user key.
func (s *MessagingService) SendSMS(ctx context.Context, to, body, userKey string) error {
	sid, err := s.sender.Send(ctx, s.fromNumber, to, body)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}

	s.logger.Info("sms sent", zap.String("sid", sid), zap.String("to", to))
	return s.logOutbound(ctx, userKey, models.ChannelSMS, body)
}

// SendWhatsApp delivers a WhatsApp message. The provider requires both
// numbers carry the whatsapp: prefix.
func (s *MessagingService) SendWhatsApp(ctx context.Context, to, body, userKey string) error {
	sid, err := s.sender.Send(ctx, whatsappAddr(s.fromNumber), whatsappAddr(to), body)
	if err != nil {
		return fmt.Errorf("send whatsapp: %w", err)
	}

	s.logger.Info("whatsapp sent", zap.String("sid", sid), zap.String("to", to))
	return s.logOutbound(ctx, userKey, models.ChannelWhatsApp, body)
}

// SendOnChannel dispatches over the channel an inbound message arrived on.
func (s *MessagingService) SendOnChannel(ctx context.Context, channel models.Channel, to, body, userKey string) error {
	switch channel {
	case models.ChannelWhatsApp:
		return s.SendWhatsApp(ctx, to, body, userKey)
	case models.ChannelSMS:
		return s.SendSMS(ctx, to, body, userKey)
	default:
		return fmt.Errorf("channel %s does not support outbound messages", channel)
	}
}

// GetConversationHistory returns the last few interactions for a user key
// in chronological order, oldest first.
func (s *MessagingService) GetConversationHistory(ctx context.Context, userKey string, limit int) ([]*models.Interaction, error) {
	items, err := s.interactions.ListRecent(ctx, userKey, limit)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// LogInteraction appends one entry to the audit log.
func (s *MessagingService) LogInteraction(ctx context.Context, it *models.Interaction) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	if it.Timestamp.IsZero() {
		it.Timestamp = time.Now()
	}
	if it.Sentiment == "" {
		it.Sentiment = models.SentimentNeutral
	}
	return s.interactions.Create(ctx, it)
}

func (s *MessagingService) logOutbound(ctx context.Context, userKey string, channel models.Channel, body string) error {
	return s.LogInteraction(ctx, &models.Interaction{
		UserID:    userKey,
		Channel:   channel,
		Direction: models.DirectionOutbound,
		Outcome:   models.OutcomeQuestionAnswered,
		Summary:   body,
	})
}

func whatsappAddr(number string) string {
	const prefix = "whatsapp:"
	if len(number) >= len(prefix) && number[:len(prefix)] == prefix {
		return number
	}
	return prefix + number
}
