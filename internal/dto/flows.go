package dto

import (
	"dojoflow/internal/models"

	"github.com/google/uuid"
)

// IndexDocumentRequest is one document submitted for knowledge indexing.
// ID is optional; when set the document keeps it.
type IndexDocumentRequest struct {
	ID       uuid.UUID                `json:"id,omitempty"`
	Title    string                   `json:"title"`
	Content  string                   `json:"content"`
	Category models.KnowledgeCategory `json:"category"`
	Metadata map[string]any           `json:"metadata,omitempty"`
}

type IndexFailure struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

type IndexBatchResult struct {
	Indexed     int            `json:"indexed"`
	Failed      int            `json:"failed"`
	DocumentIDs []uuid.UUID    `json:"documentIds"`
	Failures    []IndexFailure `json:"failures,omitempty"`
}

// RetentionSweepRequest configures an absentee outreach sweep.
type RetentionSweepRequest struct {
	DaysSinceLastAttendance int            `json:"daysSinceLastAttendance"`
	Channel                 models.Channel `json:"channel"`
	MaxContacts             int            `json:"maxContacts,omitempty"`
}

type SweepContact struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type RetentionSweepResult struct {
	Candidates int            `json:"candidates"`
	Contacted  int            `json:"contacted"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	Contacts   []SweepContact `json:"contacts"`
}

// CollectionSweepRequest configures an overdue-payment outreach sweep.
type CollectionSweepRequest struct {
	Channel     models.Channel `json:"channel"`
	MaxContacts int            `json:"maxContacts,omitempty"`
}

type CollectionSweepResult struct {
	Candidates int            `json:"candidates"`
	Contacted  int            `json:"contacted"`
	Skipped    int            `json:"skipped"`
	Failed     int            `json:"failed"`
	Contacts   []SweepContact `json:"contacts"`
}

// ReminderSweepRequest configures an appointment reminder sweep.
type ReminderSweepRequest struct {
	HoursAhead int            `json:"hoursAhead"`
	Channel    models.Channel `json:"channel"`
}

type ReminderResult struct {
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	Status        string `json:"status"`
	Error         string `json:"error,omitempty"`
}

type ReminderSweepResult struct {
	Candidates int              `json:"candidates"`
	Sent       int              `json:"sent"`
	Failed     int              `json:"failed"`
	Reminders  []ReminderResult `json:"reminders"`
}
