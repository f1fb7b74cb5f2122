package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"dojoflow/internal/models"
	"dojoflow/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testHours() config.BusinessConfig {
	return config.BusinessConfig{
		Weekday:  config.DayWindow{OpenHour: 6, CloseHour: 21},
		Saturday: config.DayWindow{OpenHour: 8, CloseHour: 14},
		Sunday:   config.DayWindow{OpenHour: 10, CloseHour: 12},
	}
}

// a Wednesday
var testDay = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func newTestCalendar(store *fakeAppointmentStore) *CalendarService {
	return NewCalendarService(store, testHours(), zap.NewNop())
}

func slotAt(slots []models.TimeSlot, hour int) bool {
	for _, s := range slots {
		if s.Start.Hour() == hour {
			return true
		}
	}
	return false
}

func TestCheckAvailabilityBusinessHours(t *testing.T) {
	cal := newTestCalendar(&fakeAppointmentStore{})

	slots, err := cal.CheckAvailability(context.Background(), testDay, models.AppointmentIntroClass)
	require.NoError(t, err)

	assert.Len(t, slots, 15) // 06:00 through 20:00 starts
	assert.Equal(t, 6, slots[0].Start.Hour())
	assert.Equal(t, 20, slots[len(slots)-1].Start.Hour())

	sunday := testDay.AddDate(0, 0, 4)
	slots, err = cal.CheckAvailability(context.Background(), sunday, models.AppointmentIntroClass)
	require.NoError(t, err)
	assert.Len(t, slots, 2) // 10:00 and 11:00
}

func TestCheckAvailabilitySlotsAreChronological(t *testing.T) {
	cal := newTestCalendar(&fakeAppointmentStore{})

	slots, err := cal.CheckAvailability(context.Background(), testDay, models.AppointmentIntroClass)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestCheckAvailabilityOverlapBlocksSlot(t *testing.T) {
	store := &fakeAppointmentStore{}
	store.appts = append(store.appts, &models.Appointment{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Type:     models.AppointmentIntroClass,
		DateTime: testDay.Add(10 * time.Hour),
		Duration: 60,
		Status:   models.AppointmentScheduled,
	})

	slots, err := newTestCalendar(store).CheckAvailability(context.Background(), testDay, models.AppointmentIntroClass)
	require.NoError(t, err)

	assert.False(t, slotAt(slots, 10))
	assert.True(t, slotAt(slots, 9))
	assert.True(t, slotAt(slots, 11))
}

func TestCheckAvailabilitySpanningAppointmentBlocksContainedSlots(t *testing.T) {
	store := &fakeAppointmentStore{}
	// 09:30 to 11:30 spans the 10:00 slot entirely and clips 09:00 and 11:00.
	store.appts = append(store.appts, &models.Appointment{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Type:     models.AppointmentPrivateLesson,
		DateTime: testDay.Add(9*time.Hour + 30*time.Minute),
		Duration: 120,
		Status:   models.AppointmentConfirmed,
	})

	slots, err := newTestCalendar(store).CheckAvailability(context.Background(), testDay, models.AppointmentIntroClass)
	require.NoError(t, err)

	assert.False(t, slotAt(slots, 9))
	assert.False(t, slotAt(slots, 10))
	assert.False(t, slotAt(slots, 11))
	assert.True(t, slotAt(slots, 8))
	assert.True(t, slotAt(slots, 12))
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	store := &fakeAppointmentStore{}
	store.appts = append(store.appts, &models.Appointment{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		DateTime: testDay.Add(10 * time.Hour),
		Duration: 60,
		Status:   models.AppointmentCancelled,
	})

	slots, err := newTestCalendar(store).CheckAvailability(context.Background(), testDay, models.AppointmentIntroClass)
	require.NoError(t, err)

	assert.True(t, slotAt(slots, 10))
}

// Booking does not re-check availability, so two concurrent bookings of the
// same slot both succeed. Staff resolve the conflict manually; this pins
// the behavior down so a future fix is a deliberate decision.
func TestConcurrentDoubleBookingBothSucceed(t *testing.T) {
	store := &fakeAppointmentStore{}
	cal := newTestCalendar(store)
	slot := testDay.Add(10 * time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cal.BookAppointment(context.Background(), uuid.New(), models.AppointmentIntroClass, slot, 60, "")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Len(t, store.appts, 2)
}

func TestBookAppointmentDefaultsDuration(t *testing.T) {
	store := &fakeAppointmentStore{}
	appt, err := newTestCalendar(store).BookAppointment(context.Background(), uuid.New(), models.AppointmentIntroClass, testDay.Add(10*time.Hour), 0, "first visit")
	require.NoError(t, err)

	assert.Equal(t, 60, appt.Duration)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, "first visit", appt.Notes)
}
