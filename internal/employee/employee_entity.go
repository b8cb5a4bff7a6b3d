package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type Employee struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name          string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_employee_name"`
	ContactNumber string    `gorm:"column:contact_number;type:varchar(30)"`
	Address       string    `gorm:"column:address;type:text"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	Role          string    `gorm:"column:role;type:varchar(20);not null;default:staff"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
