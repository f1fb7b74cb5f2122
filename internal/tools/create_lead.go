package tools

import (
	"context"
	"fmt"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// CreateLeadTool records a new lead in the CRM.
type CreateLeadTool struct {
	crm *service.CRMService
}

func NewCreateLeadTool(crm *service.CRMService) *CreateLeadTool {
	return &CreateLeadTool{crm: crm}
}

func (t *CreateLeadTool) Name() string { return "crm_create_lead" }

func (t *CreateLeadTool) Description() string {
	return "Creates a new lead record in the CRM system"
}

func (t *CreateLeadTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "The name of the lead",
			},
			"phone": {
				Type:        genai.TypeString,
				Description: "The phone number of the lead",
			},
			"interest": {
				Type:        genai.TypeString,
				Description: "What the lead is interested in (e.g., Jiu-Jitsu, Kids Classes)",
			},
			"source": {
				Type:        genai.TypeString,
				Description: "How the lead contacted us",
				Enum:        []string{"phone", "sms", "whatsapp", "facebook", "instagram", "walkin", "website"},
			},
		},
		Required: []string{"phone", "source"},
	}
}

func (t *CreateLeadTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Interest string `json:"interest"`
		Source   string `json:"source"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	lead, err := t.crm.CreateLead(ctx, in.Name, in.Phone, models.LeadSource(in.Source), in.Interest)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": true,
		"userId":  lead.ID.String(),
		"message": fmt.Sprintf("Lead created successfully with ID: %s", lead.ID),
	}, nil
}
