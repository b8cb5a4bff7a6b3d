package sale

import (
	"time"

	"github.com/google/uuid"
)

// Sale is one cash-drawer snapshot. The six amount columns are always
// coerced to non-negative floats before they reach this struct; raw strings
// never get persisted. The (date, drop_off_code) pair is unique only when a
// drop-off code is present.
type Sale struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Date           time.Time  `gorm:"column:date;type:timestamptz;not null;index;uniqueIndex:uq_sale_date_dropoff"`
	Coin           float64    `gorm:"column:coin;not null;default:0"`
	Hopper         float64    `gorm:"column:hopper;not null;default:0"`
	Soap           float64    `gorm:"column:soap;not null;default:0"`
	Vending        float64    `gorm:"column:vending;not null;default:0"`
	DropOffAmount1 float64    `gorm:"column:drop_off_amount_1;not null;default:0"`
	DropOffCode    string     `gorm:"column:drop_off_code;type:varchar(50);not null;default:'';uniqueIndex:uq_sale_date_dropoff,where:drop_off_code <> ''"`
	DropOffAmount2 float64    `gorm:"column:drop_off_amount_2;not null;default:0"`
	IsSaved        bool       `gorm:"column:is_saved;not null;default:true"`
	RecordedBy     *uuid.UUID `gorm:"column:recorded_by;type:uuid"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (Sale) TableName() string {
	return "sales"
}
