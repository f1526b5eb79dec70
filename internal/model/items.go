package model

import (
	"encoding/json"
	"fmt"
)

// LineItem is one entry in an order's or cart's item list. Orders and carts
// store their items as a JSON column; the repository layer decodes and
// validates them here instead of every job parsing the blob ad hoc.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

func DecodeLineItems(raw string) ([]LineItem, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}

	for i, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("line item %d: missing product_id", i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("line item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return nil, fmt.Errorf("line item %d: negative unit price", i)
		}
	}

	return items, nil
}

func EncodeLineItems(items []LineItem) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode line items: %w", err)
	}
	return string(raw), nil
}

// ItemsTotal sums quantity * unit price over the list.
func ItemsTotal(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
