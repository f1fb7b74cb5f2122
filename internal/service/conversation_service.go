package service

import (
	"context"
	"fmt"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"

	"go.uber.org/zap"
)

// Generator runs one model turn with tools attached.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}

// historyLimit is how many prior interactions feed the prompt.
const historyLimit = 5

// ConversationService drives one inbound message end to end: identify the
// contact, pull recent context, pick a persona, run the model with the tool
// catalog attached, log the inbound message and send the reply back over the
// same channel.
type ConversationService struct {
	crm       *CRMService
	messaging *MessagingService
	generator Generator
	tools     ToolCatalog
	logger    *zap.Logger
}

func NewConversationService(crm *CRMService, messaging *MessagingService, generator Generator, tools ToolCatalog, logger *zap.Logger) *ConversationService {
	return &ConversationService{
		crm:       crm,
		messaging: messaging,
		generator: generator,
		tools:     tools,
		logger:    logger,
	}
}

// ConversationResult reports what a handled message produced.
type ConversationResult struct {
	Response string `json:"response"`
	UserID   string `json:"userId,omitempty"`
	Action   string `json:"action,omitempty"`
}

// HandleIncomingMessage processes one inbound SMS or WhatsApp message. Any
// failed step aborts the whole turn; there is no retry.
func (s *ConversationService) HandleIncomingMessage(ctx context.Context, msg *dto.IncomingMessage) (*ConversationResult, error) {
	user, err := s.crm.IdentifyUser(ctx, msg.From)
	if err != nil {
		return nil, fmt.Errorf("identify user: %w", err)
	}

	userKey := NormalizePhone(msg.From)
	history, err := s.messaging.GetConversationHistory(ctx, userKey, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("conversation history: %w", err)
	}

	response, err := s.generator.Generate(ctx, &GenerateRequest{
		SystemPrompt: MessagingPersona(user),
		History:      history,
		Message:      msg.Body,
		Tools:        s.tools,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	if err := s.messaging.LogInteraction(ctx, &models.Interaction{
		UserID:    userKey,
		Channel:   msg.Channel,
		Direction: models.DirectionInbound,
		Outcome:   models.OutcomeQuestionAnswered,
		Summary:   msg.Body,
	}); err != nil {
		return nil, fmt.Errorf("log inbound interaction: %w", err)
	}

	if err := s.messaging.SendOnChannel(ctx, msg.Channel, msg.From, response, userKey); err != nil {
		return nil, fmt.Errorf("send reply: %w", err)
	}

	result := &ConversationResult{
		Response: response,
		Action:   "message_sent",
	}
	if user != nil {
		result.UserID = user.ID.String()
	}

	s.logger.Info("message handled",
		zap.String("channel", string(msg.Channel)),
		zap.Bool("known_user", user != nil))

	return result, nil
}
