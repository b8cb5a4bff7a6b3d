package inventory

import (
	"time"

	"github.com/google/uuid"
)

const (
	UpdateTypeRestock    = "restock"
	UpdateTypeAdjustment = "adjustment"
	UpdateTypeUsage      = "usage"
	UpdateTypeSale       = "sale"
	UpdateTypeDamage     = "damage"
	UpdateTypeOther      = "other"
)

// lowStockRatio is the fraction of maxStock at or below which a write
// triggers a low-stock event.
const lowStockRatio = 0.2

type Item struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_inventory_item_name"`
	CurrentStock float64   `gorm:"column:current_stock;not null;default:0"`
	MaxStock     float64   `gorm:"column:max_stock;not null;default:0"`
	Unit         string    `gorm:"column:unit;type:varchar(30);not null;default:units"`
	LastUpdated  time.Time `gorm:"column:last_updated"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether the item sits at or below the restock
// threshold. Items without a max are never low.
func (i *Item) IsLowStock() bool {
	if i.MaxStock <= 0 {
		return false
	}
	return i.CurrentStock <= i.MaxStock*lowStockRatio
}

type Log struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ItemName      string    `gorm:"column:item_name;type:varchar(100);not null;index"`
	PreviousStock float64   `gorm:"column:previous_stock;not null;default:0"`
	NewStock      float64   `gorm:"column:new_stock;not null;default:0"`
	UpdateType    string    `gorm:"column:update_type;type:varchar(20);not null;default:other"`
	Timestamp     time.Time `gorm:"column:timestamp;type:timestamptz;not null;index"`
	UpdatedBy     string    `gorm:"column:updated_by;type:varchar(100)"`
	Notes         string    `gorm:"column:notes;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Log) TableName() string {
	return "inventory_logs"
}
