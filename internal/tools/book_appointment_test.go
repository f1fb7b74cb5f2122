package tools

import (
	"context"
	"testing"
	"time"

	"dojoflow/internal/models"
	"dojoflow/internal/service"
	"dojoflow/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingFixture(users *memUsers, appts *memAppointments, sender *memSender, interactions *memInteractions) (*BookAppointmentTool, *service.MessagingService) {
	hours := config.BusinessConfig{
		Weekday:  config.DayWindow{OpenHour: 6, CloseHour: 21},
		Saturday: config.DayWindow{OpenHour: 8, CloseHour: 14},
		Sunday:   config.DayWindow{OpenHour: 10, CloseHour: 12},
	}
	cal := service.NewCalendarService(appts, hours, zap.NewNop())
	crm := service.NewCRMService(users, zap.NewNop())
	messaging := service.NewMessagingService(sender, interactions, "15550001111", zap.NewNop())
	return NewBookAppointmentTool(cal, crm, messaging), messaging
}

func TestBookAppointmentConfirmsAndAdvancesLead(t *testing.T) {
	lead := &models.User{
		ID:                  uuid.New(),
		Phone:               "15551230003",
		Name:                "Jordan Park",
		Type:                models.UserTypeLead,
		QualificationStatus: models.QualificationUnqualified,
	}
	users := &memUsers{users: []*models.User{lead}}
	appts := &memAppointments{}
	sender := &memSender{}
	interactions := &memInteractions{}
	tool, messaging := newBookingFixture(users, appts, sender, interactions)

	result, err := tool.Execute(context.Background(), map[string]any{
		"userId":          lead.ID.String(),
		"dateTime":        time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"appointmentType": "intro_class",
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.NotEmpty(t, result["appointmentId"])

	require.Len(t, appts.appts, 1)
	assert.Equal(t, models.AppointmentScheduled, appts.appts[0].Status)
	assert.Equal(t, 60, appts.appts[0].Duration)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "booked")

	assert.Equal(t, models.QualificationIntroScheduled, users.users[0].QualificationStatus)

	// The confirmation is logged under the phone key, so it shows up in the
	// same history the conversation flow reads.
	history, err := messaging.GetConversationHistory(context.Background(), "15551230003", 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "15551230003", history[0].UserID)
	assert.Contains(t, history[0].Summary, "booked")
}

func TestBookAppointmentStudentKeepsQualification(t *testing.T) {
	student := &models.User{
		ID:    uuid.New(),
		Phone: "15551230001",
		Name:  "Marcus Silva",
		Type:  models.UserTypeActiveStudent,
	}
	users := &memUsers{users: []*models.User{student}}
	sender := &memSender{}
	tool, _ := newBookingFixture(users, &memAppointments{}, sender, &memInteractions{})

	result, err := tool.Execute(context.Background(), map[string]any{
		"userId":          student.ID.String(),
		"dateTime":        time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"appointmentType": "private_lesson",
		"duration":        30,
	})
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.Empty(t, users.users[0].QualificationStatus)
	require.Len(t, sender.sent, 1)
}

func TestBookAppointmentInvalidInput(t *testing.T) {
	tool, _ := newBookingFixture(&memUsers{}, &memAppointments{}, &memSender{}, &memInteractions{})

	_, err := tool.Execute(context.Background(), map[string]any{
		"userId":          "not-a-uuid",
		"dateTime":        "2026-09-02T18:00:00Z",
		"appointmentType": "intro_class",
	})
	assert.Error(t, err)

	_, err = tool.Execute(context.Background(), map[string]any{
		"userId":          uuid.New().String(),
		"dateTime":        "tomorrow evening",
		"appointmentType": "intro_class",
	})
	assert.Error(t, err)
}
