package tools

import (
	"context"
	"fmt"
	"time"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// BookAppointmentTool books a slot, texts a confirmation, and advances a
// lead's pipeline stage.
type BookAppointmentTool struct {
	calendar  *service.CalendarService
	crm       *service.CRMService
	messaging *service.MessagingService
}

func NewBookAppointmentTool(calendar *service.CalendarService, crm *service.CRMService, messaging *service.MessagingService) *BookAppointmentTool {
	return &BookAppointmentTool{
		calendar:  calendar,
		crm:       crm,
		messaging: messaging,
	}
}

func (t *BookAppointmentTool) Name() string { return "calendar_book_appointment" }

func (t *BookAppointmentTool) Description() string {
	return "Books an appointment for a user and sends confirmation"
}

func (t *BookAppointmentTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"userId": {
				Type:        genai.TypeString,
				Description: "The ID of the user to book the appointment for",
			},
			"dateTime": {
				Type:        genai.TypeString,
				Description: "The date and time of the appointment in ISO format",
			},
			"appointmentType": {
				Type:        genai.TypeString,
				Description: "The kind of appointment",
				Enum:        []string{"intro_class", "private_lesson", "regular_class", "belt_test", "event"},
			},
			"duration": {
				Type:        genai.TypeInteger,
				Description: "Duration of the appointment in minutes",
			},
			"notes": {
				Type:        genai.TypeString,
				Description: "Additional notes for the appointment",
			},
		},
		Required: []string{"userId", "dateTime", "appointmentType"},
	}
}

func (t *BookAppointmentTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		UserID          string `json:"userId"`
		DateTime        string `json:"dateTime"`
		AppointmentType string `json:"appointmentType"`
		Duration        int    `json:"duration"`
		Notes           string `json:"notes"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid userId %q", in.UserID)
	}
	when, err := time.Parse(time.RFC3339, in.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid dateTime %q", in.DateTime)
	}

	appt, err := t.calendar.BookAppointment(ctx, userID, models.AppointmentType(in.AppointmentType), when, in.Duration, in.Notes)
	if err != nil {
		return nil, err
	}

	// Confirmation is best effort; the booking stands even if the text or
	// the pipeline update fails.
	user, err := t.crm.GetUser(ctx, userID)
	if err == nil && user.Phone != "" {
		_ = t.messaging.SendSMS(ctx, user.Phone, service.BookingConfirmation(appt.Type, appt.DateTime), service.NormalizePhone(user.Phone))
	}
	if err == nil && user.Type == models.UserTypeLead {
		_ = t.crm.SetQualificationStatus(ctx, user.ID, models.QualificationIntroScheduled)
	}

	return map[string]any{
		"success":       true,
		"appointmentId": appt.ID.String(),
		"confirmationMessage": fmt.Sprintf("Appointment booked successfully for %s. Confirmation sent via SMS.",
			appt.DateTime.Format("Monday, January 2 at 3:04 PM")),
	}, nil
}
