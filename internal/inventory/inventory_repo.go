package inventory

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=inventory_repo.go -destination=mock/inventory_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, item *Item) error
	FindAll(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Upsert(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
	DeleteByName(ctx context.Context, name string) error
}

type LogRepository interface {
	CreateLog(ctx context.Context, log *Log) error
	FindLogs(ctx context.Context, q LogQuery) ([]Log, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Item, error) {
	var rows []Item
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	return &item, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).First(&item, "name = ?", name).Error
	return &item, err
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Upsert creates or refreshes an item keyed by name. Stock fields and the
// last-updated stamp win over the stored row.
func (r *repository) Upsert(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_stock", "max_stock", "unit", "last_updated", "updated_at",
			}),
		}).
		Create(item).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Item{}, "id = ?", id).Error
}

func (r *repository) DeleteByName(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Delete(&Item{}, "name = ?", name).Error
}

func (r *repository) CreateLog(ctx context.Context, log *Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindLogs(ctx context.Context, q LogQuery) ([]Log, error) {
	var rows []Log
	tx := r.db.WithContext(ctx)
	if q.StartDate != "" {
		tx = tx.Where("timestamp >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		tx = tx.Where("timestamp <= ?", q.EndDate)
	}
	err := tx.Order("timestamp ASC").Find(&rows).Error
	return rows, err
}
