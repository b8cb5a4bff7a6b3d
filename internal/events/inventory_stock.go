package events

import "time"

const InventoryStockTopic = "laundry.inventory.stock.v1"

const InventoryStockLow = "inventory_stock_low"

// InventoryStockLowEvent is emitted when a write leaves a consumable at or
// below the low-stock threshold, so external alerting can prompt a restock.
type InventoryStockLowEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	ItemID       string    `json:"item_id"`
	Name         string    `json:"name"`
	CurrentStock float64   `json:"current_stock"`
	MaxStock     float64   `json:"max_stock"`
	Unit         string    `json:"unit"`
	OccurredAt   time.Time `json:"occurred_at"`
}
