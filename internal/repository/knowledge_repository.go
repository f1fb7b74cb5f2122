package repository

import (
	"context"

	"dojoflow/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var knowledgeColumns = []string{
	"id", "title", "content", "category", "embedding", "metadata", "created_at", "updated_at",
}

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Create(ctx context.Context, doc *models.KnowledgeDocument) error {
	query := squirrel.Insert("knowledge_base").
		Columns(knowledgeColumns...).
		Values(doc.ID, doc.Title, doc.Content, doc.Category,
			pgtype.FlatArray[float32](doc.Embedding), doc.Metadata, doc.CreatedAt, doc.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *KnowledgeRepository) Update(ctx context.Context, doc *models.KnowledgeDocument) error {
	query := squirrel.Update("knowledge_base").
		Set("title", doc.Title).
		Set("content", doc.Content).
		Set("category", doc.Category).
		Set("embedding", pgtype.FlatArray[float32](doc.Embedding)).
		Set("metadata", doc.Metadata).
		Set("updated_at", doc.UpdatedAt).
		Where(squirrel.Eq{"id": doc.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("knowledge_base").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *KnowledgeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeDocument, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.KnowledgeDocument
	var embedding pgtype.FlatArray[float32]
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.Title, &doc.Content, &doc.Category,
		&embedding, &doc.Metadata, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Embedding = []float32(embedding)
	return &doc, nil
}

// List returns all documents, optionally filtered by category.
func (r *KnowledgeRepository) List(ctx context.Context, category *models.KnowledgeCategory) ([]*models.KnowledgeDocument, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if category != nil {
		query = query.Where(squirrel.Eq{"category": *category})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.KnowledgeDocument
	for rows.Next() {
		var doc models.KnowledgeDocument
		var embedding pgtype.FlatArray[float32]
		if err := rows.Scan(
			&doc.ID, &doc.Title, &doc.Content, &doc.Category,
			&embedding, &doc.Metadata, &doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		doc.Embedding = []float32(embedding)
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
