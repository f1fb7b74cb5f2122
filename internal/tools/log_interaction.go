package tools

import (
	"context"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// LogInteractionTool appends an entry to the interaction audit log.
type LogInteractionTool struct {
	messaging *service.MessagingService
}

func NewLogInteractionTool(messaging *service.MessagingService) *LogInteractionTool {
	return &LogInteractionTool{messaging: messaging}
}

func (t *LogInteractionTool) Name() string { return "analytics_log_interaction" }

func (t *LogInteractionTool) Description() string {
	return "Logs an interaction to the analytics system for KPI tracking"
}

func (t *LogInteractionTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"userId": {
				Type:        genai.TypeString,
				Description: "The ID or phone number of the user",
			},
			"channel": {
				Type:        genai.TypeString,
				Description: "The communication channel used",
				Enum:        []string{"voice", "sms", "whatsapp", "facebook", "instagram", "email"},
			},
			"outcome": {
				Type:        genai.TypeString,
				Description: "The outcome of the interaction",
				Enum:        []string{"booked", "question_answered", "escalated", "failed", "no_answer"},
			},
			"sentiment": {
				Type:        genai.TypeString,
				Description: "The sentiment of the interaction",
				Enum:        []string{"positive", "neutral", "negative"},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A brief summary of the interaction",
			},
			"duration": {
				Type:        genai.TypeInteger,
				Description: "Duration of the interaction in seconds (for voice calls)",
			},
		},
		Required: []string{"userId", "channel", "outcome"},
	}
}

func (t *LogInteractionTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		UserID    string `json:"userId"`
		Channel   string `json:"channel"`
		Outcome   string `json:"outcome"`
		Sentiment string `json:"sentiment"`
		Summary   string `json:"summary"`
		Duration  int    `json:"duration"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	it := &models.Interaction{
		UserID:    in.UserID,
		Channel:   models.Channel(in.Channel),
		Direction: models.DirectionInbound,
		Outcome:   models.Outcome(in.Outcome),
		Sentiment: models.Sentiment(in.Sentiment),
		Summary:   in.Summary,
		Duration:  in.Duration,
	}
	if err := t.messaging.LogInteraction(ctx, it); err != nil {
		return nil, err
	}

	return map[string]any{
		"success":       true,
		"interactionId": it.ID.String(),
		"message":       "Interaction logged successfully",
	}, nil
}
