package service

import (
	"context"
	"fmt"
	"strings"

	"dojoflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryStore is the persistence surface for the Pro Shop.
type InventoryStore interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	SearchByName(ctx context.Context, name string) ([]*models.InventoryItem, error)
	List(ctx context.Context) ([]*models.InventoryItem, error)
	UpdateStock(ctx context.Context, id uuid.UUID, variants []models.StockVariant) error
}

type InventoryService struct {
	store  InventoryStore
	logger *zap.Logger
}

func NewInventoryService(store InventoryStore, logger *zap.Logger) *InventoryService {
	return &InventoryService{
		store:  store,
		logger: logger,
	}
}

// StockAnswer is what a stock check reports for one item.
type StockAnswer struct {
	Item       *models.InventoryItem `json:"item"`
	InStock    bool                  `json:"inStock"`
	Quantity   int                   `json:"quantity"`
	MatchedFor string                `json:"matchedFor,omitempty"`
}

// CheckStock looks items up by name and reports availability, optionally
// narrowed to one size/color variant. Without a variant filter the item's
// total stock answers the question.
func (s *InventoryService) CheckStock(ctx context.Context, name, size, color string) ([]*StockAnswer, error) {
	items, err := s.store.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search inventory: %w", err)
	}

	var answers []*StockAnswer
	for _, item := range items {
		answer := &StockAnswer{Item: item}

		if size == "" && color == "" {
			answer.Quantity = item.TotalStock()
			answer.InStock = answer.Quantity > 0
		} else {
			for _, v := range item.Stock {
				if matchesVariant(v, size, color) {
					answer.Quantity += v.Quantity
				}
			}
			answer.InStock = answer.Quantity > 0
			answer.MatchedFor = strings.TrimSpace(size + " " + color)
		}

		answers = append(answers, answer)
	}

	return answers, nil
}

// GetLowStockItems returns items whose total stock dropped to or below
// their threshold.
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]*models.InventoryItem, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var low []*models.InventoryItem
	for _, item := range items {
		if item.TotalStock() <= item.LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}

// UpdateStock adjusts one variant's quantity by delta, flooring at zero. A
// variant not yet tracked is created when the delta is positive.
func (s *InventoryService) UpdateStock(ctx context.Context, id uuid.UUID, size, color string, delta int) (*models.InventoryItem, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}

	found := false
	for i := range item.Stock {
		if matchesVariant(item.Stock[i], size, color) {
			item.Stock[i].Quantity += delta
			if item.Stock[i].Quantity < 0 {
				item.Stock[i].Quantity = 0
			}
			found = true
			break
		}
	}
	if !found {
		if delta < 0 {
			delta = 0
		}
		item.Stock = append(item.Stock, models.StockVariant{Size: size, Color: color, Quantity: delta})
	}

	if err := s.store.UpdateStock(ctx, item.ID, item.Stock); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	s.logger.Info("stock updated",
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU),
		zap.Int("delta", delta))

	return item, nil
}

func (s *InventoryService) AddItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return s.store.Create(ctx, item)
}

// matchesVariant applies the optional size/color filters; an empty filter
// matches anything.
func matchesVariant(v models.StockVariant, size, color string) bool {
	if size != "" && !strings.EqualFold(v.Size, size) {
		return false
	}
	if color != "" && !strings.EqualFold(v.Color, color) {
		return false
	}
	return true
}
