package repository

import (
	"context"
	"errors"
	"time"

	"dojoflow/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var userColumns = []string{
	"id", "phone", "name", "email", "type",
	"rank", "last_attendance_date", "payment_status", "enrollment_date", "membership_type",
	"source", "interest", "qualification_status",
	"created_at", "updated_at",
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Phone, user.Name, user.Email, user.Type,
			user.Rank, user.LastAttendanceDate, user.PaymentStatus, user.EnrollmentDate, user.MembershipType,
			user.Source, user.Interest, user.QualificationStatus,
			user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanOne(r.db.QueryRow(ctx, sql, args...))
}

// GetByPhone looks a user up by normalized phone number. Returns (nil, nil)
// when no user matches.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"phone": phone}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	user, err := r.scanOne(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := squirrel.Update("users").
		Set("phone", user.Phone).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("type", user.Type).
		Set("rank", user.Rank).
		Set("last_attendance_date", user.LastAttendanceDate).
		Set("payment_status", user.PaymentStatus).
		Set("enrollment_date", user.EnrollmentDate).
		Set("membership_type", user.MembershipType).
		Set("source", user.Source).
		Set("interest", user.Interest).
		Set("qualification_status", user.QualificationStatus).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListAbsenteeStudents returns active students whose last attendance is
// before the cutoff.
func (r *UserRepository) ListAbsenteeStudents(ctx context.Context, cutoff time.Time) ([]*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"type": models.UserTypeActiveStudent}).
		Where(squirrel.Lt{"last_attendance_date": cutoff}).
		OrderBy("last_attendance_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

// ListDelinquentStudents returns active students with overdue payments.
func (r *UserRepository) ListDelinquentStudents(ctx context.Context) ([]*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"type": models.UserTypeActiveStudent}).
		Where(squirrel.Eq{"payment_status": models.PaymentStatusOverdue}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

func (r *UserRepository) scanOne(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Phone, &user.Name, &user.Email, &user.Type,
		&user.Rank, &user.LastAttendanceDate, &user.PaymentStatus, &user.EnrollmentDate, &user.MembershipType,
		&user.Source, &user.Interest, &user.QualificationStatus,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) scanMany(ctx context.Context, sql string, args []interface{}) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Phone, &user.Name, &user.Email, &user.Type,
			&user.Rank, &user.LastAttendanceDate, &user.PaymentStatus, &user.EnrollmentDate, &user.MembershipType,
			&user.Source, &user.Interest, &user.QualificationStatus,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
