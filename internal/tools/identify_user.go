package tools

import (
	"context"
	"time"

	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// IdentifyUserTool resolves a phone number to a CRM profile.
type IdentifyUserTool struct {
	crm *service.CRMService
}

func NewIdentifyUserTool(crm *service.CRMService) *IdentifyUserTool {
	return &IdentifyUserTool{crm: crm}
}

func (t *IdentifyUserTool) Name() string { return "crm_identify_user" }

func (t *IdentifyUserTool) Description() string {
	return "Identifies a user by phone number and returns their profile (New Prospect, Active Student, or Former Student)"
}

func (t *IdentifyUserTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"phone": {
				Type:        genai.TypeString,
				Description: "The phone number of the user to identify",
			},
		},
		Required: []string{"phone"},
	}
}

func (t *IdentifyUserTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		Phone string `json:"phone"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	user, err := t.crm.IdentifyUser(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return map[string]any{"found": false}, nil
	}

	profile := map[string]any{
		"id":   user.ID.String(),
		"name": user.Name,
		"type": string(user.Type),
	}
	if user.Email != "" {
		profile["email"] = user.Email
	}
	if user.IsStudent() {
		profile["rank"] = user.Rank
		profile["paymentStatus"] = string(user.PaymentStatus)
		if user.LastAttendanceDate != nil {
			profile["lastAttendanceDate"] = user.LastAttendanceDate.Format(time.RFC3339)
		}
	}

	return map[string]any{
		"found": true,
		"user":  profile,
	}, nil
}
