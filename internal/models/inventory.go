package models

import "github.com/google/uuid"

type InventoryCategory string

const (
	InventoryGi        InventoryCategory = "gi"
	InventoryBelt      InventoryCategory = "belt"
	InventoryRashguard InventoryCategory = "rashguard"
	InventoryShorts    InventoryCategory = "shorts"
	InventoryPatch     InventoryCategory = "patch"
	InventoryAccessory InventoryCategory = "accessory"
	InventoryOther     InventoryCategory = "other"
)

// StockVariant is the on-hand quantity for one size/color combination.
type StockVariant struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type InventoryItem struct {
	ID                uuid.UUID         `db:"id"`
	Name              string            `db:"name"`
	Category          InventoryCategory `db:"category"`
	Sizes             []string          `db:"sizes"`
	Colors            []string          `db:"colors"`
	Stock             []StockVariant    `db:"stock"`
	Price             float64           `db:"price"`
	SKU               string            `db:"sku"`
	LowStockThreshold int               `db:"low_stock_threshold"`
}

// TotalStock sums quantities across all variants.
func (i *InventoryItem) TotalStock() int {
	total := 0
	for _, v := range i.Stock {
		total += v.Quantity
	}
	return total
}
