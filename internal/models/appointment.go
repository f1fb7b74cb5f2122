package models

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentType string

const (
	AppointmentIntroClass    AppointmentType = "intro_class"
	AppointmentPrivateLesson AppointmentType = "private_lesson"
	AppointmentRegularClass  AppointmentType = "regular_class"
	AppointmentBeltTest      AppointmentType = "belt_test"
	AppointmentEvent         AppointmentType = "event"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentNoShow    AppointmentStatus = "no_show"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID           uuid.UUID         `db:"id"`
	UserID       uuid.UUID         `db:"user_id"`
	Type         AppointmentType   `db:"type"`
	DateTime     time.Time         `db:"date_time"`
	Duration     int               `db:"duration"` // minutes
	Status       AppointmentStatus `db:"status"`
	Notes        string            `db:"notes"`
	ReminderSent bool              `db:"reminder_sent"`
	CreatedAt    time.Time         `db:"created_at"`
}

// End returns the exclusive end instant of the appointment.
func (a *Appointment) End() time.Time {
	return a.DateTime.Add(time.Duration(a.Duration) * time.Minute)
}

// TimeSlot is a candidate appointment window. Slots are derived, never
// persisted.
type TimeSlot struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Available bool            `json:"available"`
	Type      AppointmentType `json:"type,omitempty"`
}
