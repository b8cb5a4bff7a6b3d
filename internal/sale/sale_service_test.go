package sale

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	"github.com/creesler/laundry-pos-backend/internal/period"
	saleerrors "github.com/creesler/laundry-pos-backend/internal/sale/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, s *Sale) error
	findAllFn     func(ctx context.Context, rng *period.Range) ([]Sale, error)
	findByIDFn    func(ctx context.Context, id string) (*Sale, error)
	updateFn      func(ctx context.Context, s *Sale) error
	deleteFn      func(ctx context.Context, id string) error
	insertBatchFn func(ctx context.Context, rows []Sale) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f }
func (f *fakeRepo) Create(ctx context.Context, s *Sale) error { return f.createFn(ctx, s) }
func (f *fakeRepo) FindAll(ctx context.Context, rng *period.Range) ([]Sale, error) {
	return f.findAllFn(ctx, rng)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Sale, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, s *Sale) error   { return f.updateFn(ctx, s) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) InsertBatch(ctx context.Context, rows []Sale) (int64, error) {
	return f.insertBatchFn(ctx, rows)
}

type fakeDirectory struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}

func newTestService(repo *fakeRepo, dir *fakeDirectory, now time.Time) *service {
	if dir == nil {
		dir = &fakeDirectory{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.MustParse(id)}, nil
		}}
	}
	svc := NewService(repo, dir).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Summary_RequiresRange(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, time.Now())

	_, err := svc.Summary(context.Background(), RangeQuery{})
	assert.ErrorIs(t, err, saleerrors.ErrRangeRequired)

	_, err = svc.Summary(context.Background(), RangeQuery{StartDate: "2024-02-01"})
	assert.ErrorIs(t, err, saleerrors.ErrRangeRequired)
}

func TestService_Summary_MonthPeriod(t *testing.T) {
	now := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)

	var gotRange *period.Range
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, rng *period.Range) ([]Sale, error) {
			gotRange = rng
			return []Sale{{Coin: 10}, {Coin: 5.5}}, nil
		},
	}

	svc := newTestService(repo, nil, now)
	resp, err := svc.Summary(context.Background(), RangeQuery{Period: period.Month})
	assert.NoError(t, err)
	assert.NotNil(t, gotRange)
	assert.Equal(t, 1, gotRange.Start.Day())
	assert.Equal(t, 29, gotRange.End.Day()) // leap year February
	assert.Equal(t, 15.5, resp.CoinTotal)
	assert.Equal(t, 15.5, resp.Total)
}

func TestService_Summary_AllIsUnfiltered(t *testing.T) {
	var gotRange *period.Range
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, rng *period.Range) ([]Sale, error) {
			gotRange = rng
			return nil, nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	resp, err := svc.Summary(context.Background(), RangeQuery{Period: period.All})
	assert.NoError(t, err)
	assert.Nil(t, gotRange)
	assert.Equal(t, 0.0, resp.CoinTotal)
}

func TestService_Summary_InvalidPeriod(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, time.Now())
	_, err := svc.Summary(context.Background(), RangeQuery{Period: "fortnight"})
	assert.ErrorIs(t, err, saleerrors.ErrInvalidPeriod)
}

func TestService_Create_CoercesStringAmounts(t *testing.T) {
	// a raw dashboard payload with string amounts must persist as numbers
	var req CreateSaleRequest
	raw := `{"date":"2024-03-05","coin":"12.5","hopper":"","soap":null,"vending":3}`
	assert.NoError(t, json.Unmarshal([]byte(raw), &req))

	var saved Sale
	repo := &fakeRepo{createFn: func(ctx context.Context, s *Sale) error { saved = *s; return nil }}
	svc := newTestService(repo, nil, time.Now())

	resp, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 12.5, saved.Coin)
	assert.Equal(t, 0.0, saved.Hopper)
	assert.Equal(t, 0.0, saved.Soap)
	assert.Equal(t, 3.0, saved.Vending)
	assert.Equal(t, 12.5, resp.Coin)
	assert.True(t, saved.IsSaved)
}

func TestService_Create_InvalidEmployeeRef(t *testing.T) {
	dir := &fakeDirectory{findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}}
	svc := newTestService(&fakeRepo{}, dir, time.Now())

	_, err := svc.Create(context.Background(), CreateSaleRequest{RecordedBy: uuid.New().String()})
	assert.ErrorIs(t, err, saleerrors.ErrInvalidEmployeeRef)

	_, err = svc.Create(context.Background(), CreateSaleRequest{RecordedBy: "not-a-uuid"})
	assert.ErrorIs(t, err, saleerrors.ErrInvalidEmployeeRef)
}

func TestService_BulkInsert_ReportsPartialSuccess(t *testing.T) {
	var gotRows []Sale
	repo := &fakeRepo{insertBatchFn: func(ctx context.Context, rows []Sale) (int64, error) {
		gotRows = rows
		return 2, nil // one of three collided on (date, drop-off code)
	}}
	svc := newTestService(repo, nil, time.Now())

	req := BulkSalesRequest{Entries: []BulkEntry{
		{Date: "2024-03-01", DropOffCode: "A1"},
		{Date: "2024-03-01", DropOffCode: "A2"},
		{Date: "2024-03-01", DropOffCode: "A1"},
	}}

	resp, err := svc.BulkInsert(context.Background(), req)
	assert.NoError(t, err)
	assert.Len(t, gotRows, 3)
	assert.Equal(t, int64(2), resp.NInserted)
	assert.Equal(t, 3, resp.TotalAttempted)
	assert.Contains(t, resp.Message, "2 out of 3")
	assert.Contains(t, resp.Message, "1 entries were duplicates")
}

func TestService_BulkInsert_AllSaved(t *testing.T) {
	repo := &fakeRepo{insertBatchFn: func(ctx context.Context, rows []Sale) (int64, error) {
		return int64(len(rows)), nil
	}}
	svc := newTestService(repo, nil, time.Now())

	resp, err := svc.BulkInsert(context.Background(), BulkSalesRequest{Entries: []BulkEntry{{}, {}}})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.NInserted)
	assert.Contains(t, resp.Message, "all 2")
}

func TestCoerceSavedFlag(t *testing.T) {
	assert.True(t, coerceSavedFlag(nil))
	assert.True(t, coerceSavedFlag(true))
	assert.True(t, coerceSavedFlag("true"))
	assert.False(t, coerceSavedFlag(false))
	assert.False(t, coerceSavedFlag("false"))
}
