package repository

import (
	"context"
	"encoding/json"

	"dojoflow/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var inventoryColumns = []string{
	"id", "name", "category", "sizes", "colors", "stock", "price", "sku", "low_stock_threshold",
}

type InventoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInventoryRepository(db *pgxpool.Pool, logger *zap.Logger) *InventoryRepository {
	return &InventoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	stock, err := json.Marshal(item.Stock)
	if err != nil {
		return err
	}

	query := squirrel.Insert("inventory").
		Columns(inventoryColumns...).
		Values(item.ID, item.Name, item.Category, item.Sizes, item.Colors,
			stock, item.Price, item.SKU, item.LowStockThreshold).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	query := squirrel.Select(inventoryColumns...).
		From("inventory").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	var stock []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&item.ID, &item.Name, &item.Category, &item.Sizes, &item.Colors,
		&stock, &item.Price, &item.SKU, &item.LowStockThreshold,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(stock, &item.Stock); err != nil {
		return nil, err
	}

	return &item, nil
}

// SearchByName returns items whose name matches the query, case-insensitive.
func (r *InventoryRepository) SearchByName(ctx context.Context, name string) ([]*models.InventoryItem, error) {
	query := squirrel.Select(inventoryColumns...).
		From("inventory").
		Where(squirrel.ILike{"name": "%" + name + "%"}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

func (r *InventoryRepository) List(ctx context.Context) ([]*models.InventoryItem, error) {
	query := squirrel.Select(inventoryColumns...).
		From("inventory").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, sql, args)
}

// UpdateStock replaces the stock variants of an item.
func (r *InventoryRepository) UpdateStock(ctx context.Context, id uuid.UUID, variants []models.StockVariant) error {
	stock, err := json.Marshal(variants)
	if err != nil {
		return err
	}

	query := squirrel.Update("inventory").
		Set("stock", stock).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *InventoryRepository) scanMany(ctx context.Context, sql string, args []interface{}) ([]*models.InventoryItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		var stock []byte
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Category, &item.Sizes, &item.Colors,
			&stock, &item.Price, &item.SKU, &item.LowStockThreshold,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(stock, &item.Stock); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}
