package repository

import (
	"context"

	"dojoflow/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var interactionColumns = []string{
	"id", "user_id", "channel", "direction", "outcome", "sentiment", "summary", "duration", "timestamp",
}

type InteractionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInteractionRepository(db *pgxpool.Pool, logger *zap.Logger) *InteractionRepository {
	return &InteractionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InteractionRepository) Create(ctx context.Context, it *models.Interaction) error {
	query := squirrel.Insert("interactions").
		Columns(interactionColumns...).
		Values(it.ID, it.UserID, it.Channel, it.Direction, it.Outcome,
			it.Sentiment, it.Summary, it.Duration, it.Timestamp).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListRecent returns the most recent interactions for a user key (CRM id or
// normalized phone), newest first.
func (r *InteractionRepository) ListRecent(ctx context.Context, userKey string, limit int) ([]*models.Interaction, error) {
	query := squirrel.Select(interactionColumns...).
		From("interactions").
		Where(squirrel.Eq{"user_id": userKey}).
		OrderBy("timestamp DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Interaction
	for rows.Next() {
		var it models.Interaction
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.Channel, &it.Direction, &it.Outcome,
			&it.Sentiment, &it.Summary, &it.Duration, &it.Timestamp,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}

	return items, rows.Err()
}
