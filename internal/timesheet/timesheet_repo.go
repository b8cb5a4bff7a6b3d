package timesheet

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindAll(ctx context.Context, q ListQuery) ([]Timesheet, error)
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	FindByEmployeeAndClockIn(ctx context.Context, employeeName string, clockIn time.Time) (*Timesheet, error)
	FindPendingByEmployee(ctx context.Context, employeeName string) (*Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, q ListQuery) ([]Timesheet, error) {
	var rows []Timesheet
	tx := r.db.WithContext(ctx)
	if q.EmployeeName != "" {
		tx = tx.Where("employee_name = ?", q.EmployeeName)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.StartDate != "" {
		tx = tx.Where("date >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		tx = tx.Where("date <= ?", q.EndDate)
	}
	err := tx.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindByEmployeeAndClockIn(ctx context.Context, employeeName string, clockIn time.Time) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).
		First(&t, "employee_name = ? AND clock_in = ?", employeeName, clockIn).Error
	return &t, err
}

func (r *repository) FindPendingByEmployee(ctx context.Context, employeeName string) (*Timesheet, error) {
	var t Timesheet
	err := r.db.WithContext(ctx).
		First(&t, "employee_name = ? AND status = ?", employeeName, StatusPending).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Timesheet{}, "id = ?", id).Error
}
