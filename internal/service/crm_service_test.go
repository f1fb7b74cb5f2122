package service

import (
	"context"
	"testing"
	"time"

	"dojoflow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "15551234567"},
		{"15551234567", "15551234567"},
		{"555.123.4567", "5551234567"},
		{"no digits", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in))
	}
}

func TestIdentifyUserUnknownIsNotAnError(t *testing.T) {
	crm := NewCRMService(&fakeUserStore{}, zap.NewNop())

	user, err := crm.IdentifyUser(context.Background(), "+1 (555) 000-0000")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestIdentifyUserMatchesFormattedNumber(t *testing.T) {
	store := &fakeUserStore{}
	store.users = append(store.users, &models.User{
		ID:    uuid.New(),
		Phone: "15551234567",
		Name:  "Marcus Silva",
		Type:  models.UserTypeActiveStudent,
	})
	crm := NewCRMService(store, zap.NewNop())

	user, err := crm.IdentifyUser(context.Background(), "+1 (555) 123-4567")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Marcus Silva", user.Name)
}

func TestCreateLeadDeduplicatesByPhone(t *testing.T) {
	store := &fakeUserStore{}
	crm := NewCRMService(store, zap.NewNop())

	first, err := crm.CreateLead(context.Background(), "Jordan", "+1 555-123-4567", models.LeadSourceSMS, "Adults")
	require.NoError(t, err)

	second, err := crm.CreateLead(context.Background(), "Jordan P.", "(555) 123-4567 ext 1", models.LeadSourcePhone, "Kids")
	require.NoError(t, err)

	// Same digits land on the same record; nothing new is created for a
	// different formatting of the number.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, store.users, 2)

	third, err := crm.CreateLead(context.Background(), "Jordan again", "+1 (555) 123-4567", models.LeadSourceWhatsApp, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
	assert.Len(t, store.users, 2)
}

func TestCreateLeadRequiresPhone(t *testing.T) {
	crm := NewCRMService(&fakeUserStore{}, zap.NewNop())

	_, err := crm.CreateLead(context.Background(), "No Phone", "---", models.LeadSourceWalkIn, "")
	assert.Error(t, err)
}

func TestSetQualificationStatus(t *testing.T) {
	store := &fakeUserStore{}
	lead := &models.User{
		ID:                  uuid.New(),
		Phone:               "15551230003",
		Type:                models.UserTypeLead,
		QualificationStatus: models.QualificationUnqualified,
	}
	store.users = append(store.users, lead)
	crm := NewCRMService(store, zap.NewNop())

	err := crm.SetQualificationStatus(context.Background(), lead.ID, models.QualificationIntroScheduled)
	require.NoError(t, err)
	assert.Equal(t, models.QualificationIntroScheduled, store.users[0].QualificationStatus)
}

func TestGetAbsenteeStudents(t *testing.T) {
	store := &fakeUserStore{}
	old := time.Now().AddDate(0, 0, -30)
	recent := time.Now().AddDate(0, 0, -2)
	store.users = append(store.users,
		&models.User{ID: uuid.New(), Type: models.UserTypeActiveStudent, LastAttendanceDate: &old, Name: "away"},
		&models.User{ID: uuid.New(), Type: models.UserTypeActiveStudent, LastAttendanceDate: &recent, Name: "regular"},
		&models.User{ID: uuid.New(), Type: models.UserTypeFormerStudent, LastAttendanceDate: &old, Name: "gone"},
	)
	crm := NewCRMService(store, zap.NewNop())

	absentees, err := crm.GetAbsenteeStudents(context.Background(), 14)
	require.NoError(t, err)
	require.Len(t, absentees, 1)
	assert.Equal(t, "away", absentees[0].Name)
}

func TestGetStudentProfileRejectsNonStudents(t *testing.T) {
	store := &fakeUserStore{}
	lead := &models.User{ID: uuid.New(), Type: models.UserTypeLead}
	store.users = append(store.users, lead)
	crm := NewCRMService(store, zap.NewNop())

	_, err := crm.GetStudentProfile(context.Background(), lead.ID)
	assert.Error(t, err)
}
