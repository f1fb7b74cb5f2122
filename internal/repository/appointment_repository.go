package repository

import (
	"context"
	"time"

	"dojoflow/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var appointmentColumns = []string{
	"id", "user_id", "type", "date_time", "duration", "status", "notes", "reminder_sent", "created_at",
}

type AppointmentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAppointmentRepository(db *pgxpool.Pool, logger *zap.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	query := squirrel.Insert("appointments").
		Columns(appointmentColumns...).
		Values(appt.ID, appt.UserID, appt.Type, appt.DateTime, appt.Duration,
			appt.Status, appt.Notes, appt.ReminderSent, appt.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	query := squirrel.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var appt models.Appointment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&appt.ID, &appt.UserID, &appt.Type, &appt.DateTime, &appt.Duration,
		&appt.Status, &appt.Notes, &appt.ReminderSent, &appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &appt, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	query := squirrel.Update("appointments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListBetween returns appointments starting within [start, end) that carry
// one of the given statuses, in chronological order.
func (r *AppointmentRepository) ListBetween(ctx context.Context, start, end time.Time, statuses []models.AppointmentStatus) ([]*models.Appointment, error) {
	query := squirrel.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.GtOrEq{"date_time": start}).
		Where(squirrel.Lt{"date_time": end}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("date_time ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

// ListForReminder returns scheduled or confirmed appointments starting within
// [start, end) whose reminder has not yet been sent.
func (r *AppointmentRepository) ListForReminder(ctx context.Context, start, end time.Time) ([]*models.Appointment, error) {
	query := squirrel.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.GtOrEq{"date_time": start}).
		Where(squirrel.Lt{"date_time": end}).
		Where(squirrel.Eq{"status": []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentConfirmed}}).
		Where(squirrel.Eq{"reminder_sent": false}).
		OrderBy("date_time ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

func (r *AppointmentRepository) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Update("appointments").
		Set("reminder_sent", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AppointmentRepository) scanMany(ctx context.Context, sql string, args []interface{}) ([]*models.Appointment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []*models.Appointment
	for rows.Next() {
		var appt models.Appointment
		if err := rows.Scan(
			&appt.ID, &appt.UserID, &appt.Type, &appt.DateTime, &appt.Duration,
			&appt.Status, &appt.Notes, &appt.ReminderSent, &appt.CreatedAt,
		); err != nil {
			return nil, err
		}
		appts = append(appts, &appt)
	}

	return appts, rows.Err()
}
