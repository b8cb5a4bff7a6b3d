package sale

import (
	"context"
	"database/sql"

	"github.com/creesler/laundry-pos-backend/internal/period"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=sale_repo.go -destination=mock/sale_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Sale) error
	FindAll(ctx context.Context, rng *period.Range) ([]Sale, error)
	FindByID(ctx context.Context, id string) (*Sale, error)
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id string) error
	InsertBatch(ctx context.Context, rows []Sale) (int64, error)
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

func (r *repository) Create(ctx context.Context, s *Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, rng *period.Range) ([]Sale, error) {
	var rows []Sale
	q := r.db.WithContext(ctx)
	if rng != nil {
		q = q.Where("date >= ? AND date <= ?", rng.Start, rng.End)
	}
	err := q.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Sale, error) {
	var s Sale
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Sale) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Sale{}, "id = ?", id).Error
}

// InsertBatch writes the rows in one statement, skipping any that collide on
// the sparse (date, drop_off_code) uniqueness rule, and reports how many
// actually landed.
func (r *repository) InsertBatch(ctx context.Context, rows []Sale) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}
