package inventory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	inventoryerrors "github.com/creesler/laundry-pos-backend/internal/inventory/errors"
	"github.com/creesler/laundry-pos-backend/internal/messaging/kafka"
	"github.com/creesler/laundry-pos-backend/internal/shared/numeric"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, item *Item) error
	findAllFn      func(ctx context.Context) ([]Item, error)
	findByIDFn     func(ctx context.Context, id string) (*Item, error)
	findByNameFn   func(ctx context.Context, name string) (*Item, error)
	updateFn       func(ctx context.Context, item *Item) error
	upsertFn       func(ctx context.Context, item *Item) error
	deleteFn       func(ctx context.Context, id string) error
	deleteByNameFn func(ctx context.Context, name string) error
	createLogFn    func(ctx context.Context, log *Log) error
	findLogsFn     func(ctx context.Context, q LogQuery) ([]Log, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, item *Item) error {
	return f.createFn(ctx, item)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Item, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Item, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByName(ctx context.Context, name string) (*Item, error) {
	return f.findByNameFn(ctx, name)
}
func (f *fakeRepo) Update(ctx context.Context, item *Item) error {
	return f.updateFn(ctx, item)
}
func (f *fakeRepo) Upsert(ctx context.Context, item *Item) error {
	return f.upsertFn(ctx, item)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) DeleteByName(ctx context.Context, name string) error {
	return f.deleteByNameFn(ctx, name)
}
func (f *fakeRepo) CreateLog(ctx context.Context, log *Log) error {
	return f.createLogFn(ctx, log)
}
func (f *fakeRepo) FindLogs(ctx context.Context, q LogQuery) ([]Log, error) {
	return f.findLogsFn(ctx, q)
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func noItemByName(ctx context.Context, name string) (*Item, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestValidateStock(t *testing.T) {
	assert.NoError(t, validateStock(5, 10))
	assert.NoError(t, validateStock(5, 0)) // no max configured
	assert.ErrorIs(t, validateStock(-1, 10), inventoryerrors.ErrNegativeStock)
	assert.ErrorIs(t, validateStock(5, -1), inventoryerrors.ErrNegativeStock)
	assert.ErrorIs(t, validateStock(11, 10), inventoryerrors.ErrStockAboveMax)
}

func TestItem_IsLowStock(t *testing.T) {
	assert.True(t, (&Item{CurrentStock: 2, MaxStock: 10}).IsLowStock())
	assert.True(t, (&Item{CurrentStock: 0, MaxStock: 10}).IsLowStock())
	assert.False(t, (&Item{CurrentStock: 3, MaxStock: 10}).IsLowStock())
	assert.False(t, (&Item{CurrentStock: 0, MaxStock: 0}).IsLowStock())
}

func TestService_Create(t *testing.T) {
	var saved Item
	repo := &fakeRepo{
		findByNameFn: noItemByName,
		createFn: func(ctx context.Context, item *Item) error {
			saved = *item
			return nil
		},
	}

	svc := NewService(nil, repo, repo).(*service)
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC) }

	resp, err := svc.Create(context.Background(), CreateItemRequest{Name: "Detergent", CurrentStock: 40, MaxStock: 50})
	assert.NoError(t, err)
	assert.Equal(t, "Detergent", saved.Name)
	assert.Equal(t, "units", saved.Unit)
	assert.Equal(t, 40.0, resp.CurrentStock)
}

func TestService_Create_DuplicateName(t *testing.T) {
	repo := &fakeRepo{
		findByNameFn: func(ctx context.Context, name string) (*Item, error) {
			return &Item{Name: name}, nil
		},
	}

	svc := NewService(nil, repo, repo)
	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Detergent"})
	assert.ErrorIs(t, err, inventoryerrors.ErrItemAlreadyExists)
}

func TestService_Create_StockBounds(t *testing.T) {
	repo := &fakeRepo{findByNameFn: noItemByName}
	svc := NewService(nil, repo, repo)

	_, err := svc.Create(context.Background(), CreateItemRequest{Name: "Soap", CurrentStock: 60, MaxStock: 50})
	assert.ErrorIs(t, err, inventoryerrors.ErrStockAboveMax)
}

func TestService_Update_EmitsLowStockEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, _ string) (*Item, error) {
			return &Item{ID: id, Name: "Detergent", CurrentStock: 30, MaxStock: 50, Unit: "units"}, nil
		},
		updateFn: func(ctx context.Context, item *Item) error { return nil },
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(db, repo, repo, outbox)
	stock := numeric.Amount(5)
	_, err = svc.Update(context.Background(), id.String(), UpdateItemRequest{CurrentStock: &stock})
	assert.NoError(t, err)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "inventory_stock_low", outbox.events[0].EventType)
	assert.Equal(t, "laundry.inventory.stock.v1", outbox.events[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_NoEventAboveThreshold(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, _ string) (*Item, error) {
			return &Item{ID: id, Name: "Detergent", CurrentStock: 30, MaxStock: 50}, nil
		},
		updateFn: func(ctx context.Context, item *Item) error { return nil },
	}
	outbox := &fakeOutbox{}

	svc := NewServiceWithOutbox(nil, repo, repo, outbox)
	stock := numeric.Amount(25)
	_, err := svc.Update(context.Background(), id.String(), UpdateItemRequest{CurrentStock: &stock})
	assert.NoError(t, err)
	assert.Empty(t, outbox.events)
}

func TestService_GetByID_InvalidID(t *testing.T) {
	svc := NewService(nil, &fakeRepo{}, &fakeRepo{})
	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, inventoryerrors.ErrItemNotFound)
}

func TestService_ListLogs_PassesRange(t *testing.T) {
	var gotQuery LogQuery
	repo := &fakeRepo{
		findLogsFn: func(ctx context.Context, q LogQuery) ([]Log, error) {
			gotQuery = q
			return []Log{{ID: uuid.New(), ItemName: "Soap", UpdateType: UpdateTypeUsage}}, nil
		},
	}

	svc := NewService(nil, &fakeRepo{}, repo)
	resp, err := svc.ListLogs(context.Background(), LogQuery{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-01", gotQuery.StartDate)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Soap", resp[0].ItemName)
}
