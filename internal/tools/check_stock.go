package tools

import (
	"context"
	"fmt"
	"strings"

	"dojoflow/internal/service"

	"google.golang.org/genai"
)

// CheckStockTool answers Pro Shop availability questions.
type CheckStockTool struct {
	inventory *service.InventoryService
}

func NewCheckStockTool(inventory *service.InventoryService) *CheckStockTool {
	return &CheckStockTool{inventory: inventory}
}

func (t *CheckStockTool) Name() string { return "inventory_check_stock" }

func (t *CheckStockTool) Description() string {
	return "Checks inventory stock levels for Pro Shop items"
}

func (t *CheckStockTool) Parameters() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"itemName": {
				Type:        genai.TypeString,
				Description: `The name of the item (e.g., "Gi", "Belt", "Rashguard")`,
			},
			"size": {
				Type:        genai.TypeString,
				Description: `Optional size filter (e.g., "A2", "M", "Large")`,
			},
			"color": {
				Type:        genai.TypeString,
				Description: `Optional color filter (e.g., "White", "Blue", "Black")`,
			},
		},
		Required: []string{"itemName"},
	}
}

func (t *CheckStockTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	var in struct {
		ItemName string `json:"itemName"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}

	answers, err := t.inventory.CheckStock(ctx, in.ItemName, in.Size, in.Color)
	if err != nil {
		return nil, err
	}

	if len(answers) == 0 {
		return map[string]any{
			"available": false,
			"quantity":  0,
			"message":   fmt.Sprintf("Sorry, we don't have %q in our inventory. Would you like to hear about similar items?", in.ItemName),
		}, nil
	}

	best := answers[0]
	item := best.Item

	if !best.InStock {
		message := fmt.Sprintf("Sorry, %s is currently out of stock.", in.ItemName)
		if in.Size != "" || in.Color != "" {
			message = fmt.Sprintf("Sorry, %s %s is currently out of stock.", in.ItemName, variantText(in.Size, in.Color))
		}
		return map[string]any{
			"available": false,
			"quantity":  0,
			"price":     item.Price,
			"message":   message,
			"sizes":     item.Sizes,
			"colors":    item.Colors,
		}, nil
	}

	message := fmt.Sprintf("Yes, we have %d %s available for $%.2f.", best.Quantity, in.ItemName, item.Price)
	if in.Size != "" || in.Color != "" {
		message = fmt.Sprintf("Yes, we have %d %s %s available for $%.2f.", best.Quantity, in.ItemName, variantText(in.Size, in.Color), item.Price)
	}

	return map[string]any{
		"available": true,
		"quantity":  best.Quantity,
		"price":     item.Price,
		"message":   message,
		"sizes":     item.Sizes,
		"colors":    item.Colors,
	}, nil
}

func variantText(size, color string) string {
	parts := []string{}
	if size != "" {
		parts = append(parts, "in size "+size)
	}
	if color != "" {
		parts = append(parts, "in "+color)
	}
	return strings.Join(parts, " and ")
}
