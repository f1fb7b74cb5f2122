package service

import (
	"context"
	"testing"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// scriptedGenerator stands in for the model: it records the request and
// runs a script of tool calls through the catalog before answering.
type scriptedGenerator struct {
	reply     string
	toolCalls []struct {
		name string
		args map[string]any
	}
	lastRequest *GenerateRequest
}

func (g *scriptedGenerator) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	g.lastRequest = req
	for _, call := range g.toolCalls {
		req.Tools.Execute(ctx, call.name, call.args)
	}
	return g.reply, nil
}

// recordingCatalog satisfies ToolCatalog and notes every execution.
type recordingCatalog struct {
	executed []string
	handler  func(ctx context.Context, name string, args map[string]any) map[string]any
}

func (c *recordingCatalog) Declarations() []*genai.FunctionDeclaration { return nil }

func (c *recordingCatalog) Execute(ctx context.Context, name string, args map[string]any) map[string]any {
	c.executed = append(c.executed, name)
	if c.handler != nil {
		return c.handler(ctx, name, args)
	}
	return map[string]any{"success": true}
}

func newConversationFixture(users *fakeUserStore, sender *fakeSender, interactions *fakeInteractionStore, gen Generator, catalog ToolCatalog) *ConversationService {
	crm := NewCRMService(users, zap.NewNop())
	messaging := NewMessagingService(sender, interactions, "15550001111", zap.NewNop())
	return NewConversationService(crm, messaging, gen, catalog, zap.NewNop())
}

// An unknown phone asking about classes gets the welcoming persona, the
// model's tool calls run against the catalog, the reply goes out as SMS and
// both directions land in the audit log.
func TestHandleIncomingMessageUnknownContact(t *testing.T) {
	users := &fakeUserStore{}
	sender := &fakeSender{}
	interactions := &fakeInteractionStore{}
	catalog := &recordingCatalog{}
	gen := &scriptedGenerator{reply: "We'd love to have you! Our next intro class is tomorrow at 6 PM."}
	gen.toolCalls = []struct {
		name string
		args map[string]any
	}{
		{name: "calendar_check_availability", args: map[string]any{"startDate": "tomorrow"}},
		{name: "crm_create_lead", args: map[string]any{"phone": "+1 555 777 8888", "source": "sms"}},
	}

	svc := newConversationFixture(users, sender, interactions, gen, catalog)

	result, err := svc.HandleIncomingMessage(context.Background(), &dto.IncomingMessage{
		From:    "+1 555 777 8888",
		To:      "15550001111",
		Body:    "Do you have a free class?",
		Channel: models.ChannelSMS,
	})
	require.NoError(t, err)

	assert.Equal(t, "message_sent", result.Action)
	assert.Empty(t, result.UserID)
	assert.Contains(t, gen.lastRequest.SystemPrompt, "new contact")
	assert.Equal(t, []string{"calendar_check_availability", "crm_create_lead"}, catalog.executed)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+1 555 777 8888", sender.sent[0].To)
	assert.Equal(t, gen.reply, sender.sent[0].Body)

	require.Len(t, interactions.items, 2)
	assert.Equal(t, models.DirectionInbound, interactions.items[0].Direction)
	assert.Equal(t, "Do you have a free class?", interactions.items[0].Summary)
	assert.Equal(t, models.DirectionOutbound, interactions.items[1].Direction)
	assert.Equal(t, gen.reply, interactions.items[1].Summary)
	for _, it := range interactions.items {
		assert.Equal(t, "15557778888", it.UserID)
	}
}

func TestHandleIncomingMessageKnownStudentPersona(t *testing.T) {
	users := &fakeUserStore{}
	users.users = append(users.users, &models.User{
		Phone: "15551234567",
		Name:  "Marcus Silva",
		Type:  models.UserTypeActiveStudent,
	})
	gen := &scriptedGenerator{reply: "Your next class is tonight at 6:30 PM."}
	svc := newConversationFixture(users, &fakeSender{}, &fakeInteractionStore{}, gen, &recordingCatalog{})

	_, err := svc.HandleIncomingMessage(context.Background(), &dto.IncomingMessage{
		From:    "+1 (555) 123-4567",
		Body:    "When is my next class?",
		Channel: models.ChannelSMS,
	})
	require.NoError(t, err)

	assert.Contains(t, gen.lastRequest.SystemPrompt, "Marcus Silva")
	assert.Contains(t, gen.lastRequest.SystemPrompt, "active student")
}

func TestHandleIncomingMessageHistoryIsChronological(t *testing.T) {
	users := &fakeUserStore{}
	interactions := &fakeInteractionStore{}
	interactions.items = append(interactions.items,
		&models.Interaction{UserID: "15557778888", Direction: models.DirectionInbound, Summary: "first"},
		&models.Interaction{UserID: "15557778888", Direction: models.DirectionOutbound, Summary: "second"},
		&models.Interaction{UserID: "15557778888", Direction: models.DirectionInbound, Summary: "third"},
	)
	gen := &scriptedGenerator{reply: "ok"}
	svc := newConversationFixture(users, &fakeSender{}, interactions, gen, &recordingCatalog{})

	_, err := svc.HandleIncomingMessage(context.Background(), &dto.IncomingMessage{
		From:    "15557778888",
		Body:    "fourth",
		Channel: models.ChannelSMS,
	})
	require.NoError(t, err)

	require.Len(t, gen.lastRequest.History, 3)
	assert.Equal(t, "first", gen.lastRequest.History[0].Summary)
	assert.Equal(t, "third", gen.lastRequest.History[2].Summary)
}

func TestHandleIncomingMessageWhatsAppRepliesOnWhatsApp(t *testing.T) {
	sender := &fakeSender{}
	gen := &scriptedGenerator{reply: "hello"}
	svc := newConversationFixture(&fakeUserStore{}, sender, &fakeInteractionStore{}, gen, &recordingCatalog{})

	_, err := svc.HandleIncomingMessage(context.Background(), &dto.IncomingMessage{
		From:    "15557778888",
		Body:    "hi",
		Channel: models.ChannelWhatsApp,
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "whatsapp:15550001111", sender.sent[0].From)
	assert.Equal(t, "whatsapp:15557778888", sender.sent[0].To)
}
