package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dojoflow/internal/models"
	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// maxSlotsReturned caps how many slots the model sees so replies stay short.
const maxSlotsReturned = 10

// CheckAvailabilityTool lists free appointment slots. It accepts ISO dates
// and the relative forms people actually text: "today", "tomorrow",
// "next tuesday".
type CheckAvailabilityTool struct {
	calendar *service.CalendarService
	now      func() time.Time
}

func NewCheckAvailabilityTool(calendar *service.CalendarService) *CheckAvailabilityTool {
	return &CheckAvailabilityTool{
		calendar: calendar,
		now:      time.Now,
	}
}

func (t *CheckAvailabilityTool) Name() string { return "calendar_check_availability" }

func (t *CheckAvailabilityTool) Description() string {
	return "Checks available time slots for appointments within a date range"
}

func (t *CheckAvailabilityTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"startDate": {
				Type:        genai.TypeString,
				Description: `Start date in ISO format (YYYY-MM-DD) or relative like "today", "tomorrow", "next tuesday"`,
			},
			"endDate": {
				Type:        genai.TypeString,
				Description: "End date in ISO format (YYYY-MM-DD). If not provided, will check only the start date",
			},
			"appointmentType": {
				Type:        genai.TypeString,
				Description: "The kind of appointment to look for",
				Enum:        []string{"intro_class", "private_lesson", "regular_class", "belt_test", "event"},
			},
		},
		Required: []string{"startDate"},
	}
}

func (t *CheckAvailabilityTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		StartDate       string `json:"startDate"`
		EndDate         string `json:"endDate"`
		AppointmentType string `json:"appointmentType"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	apptType := models.AppointmentType(in.AppointmentType)
	if apptType == "" {
		apptType = models.AppointmentIntroClass
	}

	start, err := t.resolveDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end := start
	if in.EndDate != "" {
		end, err = time.ParseInLocation("2006-01-02", in.EndDate, start.Location())
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q", in.EndDate)
		}
	}

	var slots []map[string]any
	for day := start; !day.After(end) && len(slots) < maxSlotsReturned; day = day.AddDate(0, 0, 1) {
		daySlots, err := t.calendar.CheckAvailability(ctx, day, apptType)
		if err != nil {
			return nil, err
		}
		for _, slot := range daySlots {
			if len(slots) >= maxSlotsReturned {
				break
			}
			slots = append(slots, map[string]any{
				"start":       slot.Start.Format(time.RFC3339),
				"end":         slot.End.Format(time.RFC3339),
				"displayTime": slot.Start.Format("Monday, January 2 at 3:04 PM"),
			})
		}
	}

	message := "No available slots found in the requested timeframe"
	if len(slots) > 0 {
		message = fmt.Sprintf("Found %d available time slots", len(slots))
	}

	return map[string]any{
		"availableSlots": slots,
		"message":        message,
	}, nil
}

// resolveDate turns a date expression into local midnight of that day.
func (t *CheckAvailabilityTool) resolveDate(expr string) (time.Time, error) {
	now := t.now()
	midnight := func(d time.Time) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	}

	lower := strings.ToLower(strings.TrimSpace(expr))
	switch {
	case lower == "today":
		return midnight(now), nil
	case lower == "tomorrow":
		return midnight(now.AddDate(0, 0, 1)), nil
	case strings.HasPrefix(lower, "next "):
		target := strings.TrimSpace(strings.TrimPrefix(lower, "next "))
		if idx, ok := weekdayIndex(target); ok {
			daysAhead := (idx - int(now.Weekday()) + 7) % 7
			if daysAhead == 0 {
				daysAhead = 7
			}
			return midnight(now.AddDate(0, 0, daysAhead)), nil
		}
	}

	parsed, err := time.ParseInLocation("2006-01-02", expr, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", expr)
	}
	return parsed, nil
}

func weekdayIndex(name string) (int, bool) {
	days := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for i, d := range days {
		if d == name {
			return i, true
		}
	}
	return 0, false
}
