package service

import (
	"context"
	"time"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"

	"go.uber.org/zap"
)

// CampaignService runs the outbound batch sweeps. Sweeps are strictly
// sequential and sleep between contacts to stay under provider rate limits;
// a failed contact is recorded and the sweep continues.
type CampaignService struct {
	crm            *CRMService
	calendar       *CalendarService
	messaging      *MessagingService
	retentionDelay time.Duration
	reminderDelay  time.Duration
	logger         *zap.Logger
}

func NewCampaignService(crm *CRMService, calendar *CalendarService, messaging *MessagingService, retentionDelay, reminderDelay time.Duration, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		crm:            crm,
		calendar:       calendar,
		messaging:      messaging,
		retentionDelay: retentionDelay,
		reminderDelay:  reminderDelay,
		logger:         logger,
	}
}

// RetentionSweep contacts active students who have been away too long.
// Voice outreach is not wired to an outbound dialer, so voice-channel sweeps
// record every contact as skipped.
func (s *CampaignService) RetentionSweep(ctx context.Context, req *dto.RetentionSweepRequest) (*dto.RetentionSweepResult, error) {
	days := req.DaysSinceLastAttendance
	if days <= 0 {
		days = 14
	}
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	students, err := s.crm.GetAbsenteeStudents(ctx, days)
	if err != nil {
		return nil, err
	}

	result := &dto.RetentionSweepResult{Candidates: len(students)}

	toContact := students
	if req.MaxContacts > 0 && len(toContact) > req.MaxContacts {
		toContact = toContact[:req.MaxContacts]
	}

	for i, student := range toContact {
		if i > 0 {
			if err := sleepCtx(ctx, s.retentionDelay); err != nil {
				return result, err
			}
		}

		contact := dto.SweepContact{
			UserID: student.ID.String(),
			Name:   student.Name,
			Phone:  student.Phone,
		}

		if channel == models.ChannelVoice {
			contact.Status = "skipped"
			result.Skipped++
			result.Contacts = append(result.Contacts, contact)
			continue
		}

		message := RetentionMessage(student)
		err := s.messaging.SendOnChannel(ctx, channel, student.Phone, message, NormalizePhone(student.Phone))
		if err != nil {
			s.logger.Warn("retention contact failed",
				zap.String("user_id", student.ID.String()),
				zap.Error(err))
			contact.Status = "failed"
			contact.Error = err.Error()
			result.Failed++
		} else {
			contact.Status = "contacted"
			result.Contacted++
		}
		result.Contacts = append(result.Contacts, contact)
	}

	s.logger.Info("retention sweep finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("contacted", result.Contacted),
		zap.Int("failed", result.Failed))

	return result, nil
}

// CollectionSweep contacts active students whose payment is overdue. Like
// the retention sweep, voice-channel runs record every contact as skipped.
func (s *CampaignService) CollectionSweep(ctx context.Context, req *dto.CollectionSweepRequest) (*dto.CollectionSweepResult, error) {
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	students, err := s.crm.GetDelinquentStudents(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.CollectionSweepResult{Candidates: len(students)}

	toContact := students
	if req.MaxContacts > 0 && len(toContact) > req.MaxContacts {
		toContact = toContact[:req.MaxContacts]
	}

	for i, student := range toContact {
		if i > 0 {
			if err := sleepCtx(ctx, s.retentionDelay); err != nil {
				return result, err
			}
		}

		contact := dto.SweepContact{
			UserID: student.ID.String(),
			Name:   student.Name,
			Phone:  student.Phone,
		}

		if channel == models.ChannelVoice {
			contact.Status = "skipped"
			result.Skipped++
			result.Contacts = append(result.Contacts, contact)
			continue
		}

		message := CollectionMessage(student)
		err := s.messaging.SendOnChannel(ctx, channel, student.Phone, message, NormalizePhone(student.Phone))
		if err != nil {
			s.logger.Warn("collection contact failed",
				zap.String("user_id", student.ID.String()),
				zap.Error(err))
			contact.Status = "failed"
			contact.Error = err.Error()
			result.Failed++
		} else {
			contact.Status = "contacted"
			result.Contacted++
		}
		result.Contacts = append(result.Contacts, contact)
	}

	s.logger.Info("collection sweep finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("contacted", result.Contacted),
		zap.Int("failed", result.Failed))

	return result, nil
}

// AppointmentReminders nudges everyone with an upcoming unreminded
// appointment and marks each one reminded on success.
func (s *CampaignService) AppointmentReminders(ctx context.Context, req *dto.ReminderSweepRequest) (*dto.ReminderSweepResult, error) {
	hours := req.HoursAhead
	if hours <= 0 {
		hours = 24
	}
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelSMS
	}

	appts, err := s.calendar.GetAppointmentsForReminder(ctx, hours)
	if err != nil {
		return nil, err
	}

	result := &dto.ReminderSweepResult{Candidates: len(appts)}

	for i, appt := range appts {
		if i > 0 {
			if err := sleepCtx(ctx, s.reminderDelay); err != nil {
				return result, err
			}
		}

		entry := dto.ReminderResult{
			AppointmentID: appt.ID.String(),
			UserID:        appt.UserID.String(),
		}

		user, err := s.crm.GetUser(ctx, appt.UserID)
		if err != nil || user.Phone == "" {
			entry.Status = "failed"
			entry.Error = "no reachable phone for user"
			result.Failed++
			result.Reminders = append(result.Reminders, entry)
			continue
		}

		message := ReminderMessage(user.Name, appt.Type, appt.DateTime)
		if err := s.messaging.SendOnChannel(ctx, channel, user.Phone, message, NormalizePhone(user.Phone)); err != nil {
			s.logger.Warn("reminder failed",
				zap.String("appointment_id", appt.ID.String()),
				zap.Error(err))
			entry.Status = "failed"
			entry.Error = err.Error()
			result.Failed++
			result.Reminders = append(result.Reminders, entry)
			continue
		}

		if err := s.calendar.MarkReminderSent(ctx, appt.ID); err != nil {
			s.logger.Warn("mark reminder sent failed",
				zap.String("appointment_id", appt.ID.String()),
				zap.Error(err))
		}

		entry.Status = "sent"
		result.Sent++
		result.Reminders = append(result.Reminders, entry)
	}

	s.logger.Info("reminder sweep finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))

	return result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
