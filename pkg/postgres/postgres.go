package postgres

import (
	"context"
	"fmt"

	"dojoflow/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return pool, nil
}

// Bootstrap creates the collections the service depends on if they are
// missing. The schema mirrors the document shapes in internal/models.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			phone TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			rank TEXT NOT NULL DEFAULT '',
			last_attendance_date TIMESTAMPTZ,
			payment_status TEXT NOT NULL DEFAULT '',
			enrollment_date TIMESTAMPTZ,
			membership_type TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			interest TEXT NOT NULL DEFAULT '',
			qualification_status TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS users_phone_idx ON users (phone)`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			type TEXT NOT NULL,
			date_time TIMESTAMPTZ NOT NULL,
			duration INT NOT NULL DEFAULT 60,
			status TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS appointments_date_time_idx ON appointments (date_time)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			direction TEXT NOT NULL,
			outcome TEXT NOT NULL,
			sentiment TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			duration INT NOT NULL DEFAULT 0,
			timestamp TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS interactions_user_id_idx ON interactions (user_id, timestamp DESC)`,
		`CREATE TABLE IF NOT EXISTS inventory (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			sizes TEXT[] NOT NULL DEFAULT '{}',
			colors TEXT[] NOT NULL DEFAULT '{}',
			stock JSONB NOT NULL DEFAULT '[]',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			sku TEXT NOT NULL DEFAULT '',
			low_stock_threshold INT NOT NULL DEFAULT 5
		)`,
		`CREATE TABLE IF NOT EXISTS knowledge_base (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			category TEXT NOT NULL,
			embedding REAL[] NOT NULL DEFAULT '{}',
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	return nil
}
