package timesheet

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Timesheet struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeName string     `gorm:"column:employee_name;type:varchar(100);not null;index;uniqueIndex:uq_timesheet_employee_clock_in"`
	Date         time.Time  `gorm:"column:date;type:timestamptz;not null;index"`
	ClockIn      time.Time  `gorm:"column:clock_in;type:timestamptz;not null;uniqueIndex:uq_timesheet_employee_clock_in"`
	ClockOut     *time.Time `gorm:"column:clock_out;type:timestamptz"`
	Duration     int        `gorm:"column:duration;not null;default:0"`
	Status       string     `gorm:"column:status;type:varchar(20);not null;default:pending;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

// DeriveDuration recomputes duration and status from the two timestamps.
// The stored duration is never taken from client input; this runs on every
// write path and is idempotent.
func (t *Timesheet) DeriveDuration() {
	if t.ClockOut == nil || t.ClockOut.IsZero() {
		t.Duration = 0
		t.Status = StatusPending
		return
	}
	t.Duration = int(math.Round(t.ClockOut.Sub(t.ClockIn).Minutes()))
	t.Status = StatusCompleted
}
