package service

import (
	"context"
	"fmt"
	"time"

	"dojoflow/internal/models"
	"dojoflow/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentStore is the persistence surface the calendar needs.
type AppointmentStore interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error
	ListBetween(ctx context.Context, start, end time.Time, statuses []models.AppointmentStatus) ([]*models.Appointment, error)
	ListForReminder(ctx context.Context, start, end time.Time) ([]*models.Appointment, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID) error
}

type CalendarService struct {
	store  AppointmentStore
	hours  config.BusinessConfig
	logger *zap.Logger
}

func NewCalendarService(store AppointmentStore, hours config.BusinessConfig, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		store:  store,
		hours:  hours,
		logger: logger,
	}
}

// blockingStatuses are the statuses that occupy calendar time. Cancelled and
// no-show appointments free their slot.
var blockingStatuses = []models.AppointmentStatus{
	models.AppointmentScheduled,
	models.AppointmentConfirmed,
	models.AppointmentCompleted,
}

// window returns the opening hours for a calendar day.
func (s *CalendarService) window(day time.Time) config.DayWindow {
	switch day.Weekday() {
	case time.Saturday:
		return s.hours.Saturday
	case time.Sunday:
		return s.hours.Sunday
	default:
		return s.hours.Weekday
	}
}

// CheckAvailability returns the free hourly slots for a calendar day, in
// chronological order. A slot is taken when any blocking appointment
// overlaps it.
func (s *CalendarService) CheckAvailability(ctx context.Context, day time.Time, apptType models.AppointmentType) ([]models.TimeSlot, error) {
	w := s.window(day)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	booked, err := s.store.ListBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1), blockingStatuses)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	var slots []models.TimeSlot
	for hour := w.OpenHour; hour < w.CloseHour; hour++ {
		start := dayStart.Add(time.Duration(hour) * time.Hour)
		end := start.Add(time.Hour)
		if !s.slotTaken(start, end, booked) {
			slots = append(slots, models.TimeSlot{
				Start:     start,
				End:       end,
				Available: true,
				Type:      apptType,
			})
		}
	}

	return slots, nil
}

// slotTaken reports whether any appointment overlaps the slot. An
// appointment conflicts when it starts inside the slot, ends inside it, or
// spans it entirely.
func (s *CalendarService) slotTaken(slotStart, slotEnd time.Time, booked []*models.Appointment) bool {
	for _, appt := range booked {
		apptStart := appt.DateTime
		apptEnd := appt.End()

		startsInside := !apptStart.Before(slotStart) && apptStart.Before(slotEnd)
		endsInside := apptEnd.After(slotStart) && !apptEnd.After(slotEnd)
		spans := !apptStart.After(slotStart) && !apptEnd.Before(slotEnd)

		if startsInside || endsInside || spans {
			return true
		}
	}
	return false
}

// BookAppointment persists the appointment as scheduled. Availability is not
// re-checked here; two near-simultaneous bookings of the same slot both
// succeed and staff resolve the conflict manually.
func (s *CalendarService) BookAppointment(ctx context.Context, userID uuid.UUID, apptType models.AppointmentType, dateTime time.Time, durationMinutes int, notes string) (*models.Appointment, error) {
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	appt := &models.Appointment{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      apptType,
		DateTime:  dateTime,
		Duration:  durationMinutes,
		Status:    models.AppointmentScheduled,
		Notes:     notes,
		CreatedAt: time.Now(),
	}

	if err := s.store.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Time("date_time", dateTime))

	return appt, nil
}

func (s *CalendarService) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CalendarService) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	return s.store.UpdateStatus(ctx, id, status)
}

// GetAppointmentsForReminder returns upcoming appointments within the
// horizon that have not been reminded yet.
func (s *CalendarService) GetAppointmentsForReminder(ctx context.Context, hoursAhead int) ([]*models.Appointment, error) {
	now := time.Now()
	return s.store.ListForReminder(ctx, now, now.Add(time.Duration(hoursAhead)*time.Hour))
}

func (s *CalendarService) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return s.store.MarkReminderSent(ctx, id)
}
