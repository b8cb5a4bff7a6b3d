package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/events"
	inventoryerrors "github.com/creesler/laundry-pos-backend/internal/inventory/errors"
	"github.com/creesler/laundry-pos-backend/internal/messaging/kafka"
	"github.com/creesler/laundry-pos-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=inventory_service.go -destination=mock/inventory_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) ([]ItemResponse, error)
	GetByID(ctx context.Context, id string) (ItemResponse, error)
	Create(ctx context.Context, req CreateItemRequest) (ItemResponse, error)
	Update(ctx context.Context, id string, req UpdateItemRequest) (ItemResponse, error)
	Delete(ctx context.Context, id string) error
	ListLogs(ctx context.Context, q LogQuery) ([]LogResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logs   LogRepository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logs LogRepository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, logs, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	logs LogRepository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("inventory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("inventory.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logs:   logs,
		outbox: outboxRepo,
		logger: l,
		now:    time.Now,
	}
}

func (s *service) List(ctx context.Context) ([]ItemResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list inventory failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]ItemResponse, len(rows))
	for i, r := range rows {
		res[i] = mapItemToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ItemResponse{}, inventoryerrors.ErrItemNotFound
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}
	return mapItemToResponse(*item), nil
}

func (s *service) Create(ctx context.Context, req CreateItemRequest) (ItemResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return ItemResponse{}, inventoryerrors.ErrItemAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ItemResponse{}, err
	}

	item := &Item{
		ID:           uuid.New(),
		Name:         req.Name,
		CurrentStock: req.CurrentStock.Float64(),
		MaxStock:     req.MaxStock.Float64(),
		Unit:         req.Unit,
		LastUpdated:  s.now(),
	}
	if item.Unit == "" {
		item.Unit = "units"
	}
	if err := validateStock(item.CurrentStock, item.MaxStock); err != nil {
		return ItemResponse{}, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("create inventory item failed", zap.String("request_id", rid), zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	s.notifyIfLowStock(ctx, item)
	s.logger.Info("create inventory item success",
		zap.String("request_id", rid),
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
	)
	return mapItemToResponse(*item), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateItemRequest) (ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ItemResponse{}, inventoryerrors.ErrItemNotFound
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ItemResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.CurrentStock != nil {
		item.CurrentStock = req.CurrentStock.Float64()
	}
	if req.MaxStock != nil {
		item.MaxStock = req.MaxStock.Float64()
	}
	if req.Unit != nil && *req.Unit != "" {
		item.Unit = *req.Unit
	}
	if err := validateStock(item.CurrentStock, item.MaxStock); err != nil {
		return ItemResponse{}, err
	}
	item.LastUpdated = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("update inventory item failed", zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	s.notifyIfLowStock(ctx, item)
	return mapItemToResponse(*item), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return inventoryerrors.ErrItemNotFound
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete inventory item failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) ListLogs(ctx context.Context, q LogQuery) ([]LogResponse, error) {
	rows, err := s.logs.FindLogs(ctx, q)
	if err != nil {
		s.logger.Error("list inventory logs failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]LogResponse, len(rows))
	for i, r := range rows {
		res[i] = mapLogToResponse(r)
	}
	return res, nil
}

// validateStock enforces the write-time stock invariants: no negative
// values, and when a max is set the current level must fit under it.
func validateStock(current, max float64) error {
	if current < 0 || max < 0 {
		return inventoryerrors.ErrNegativeStock
	}
	if max > 0 && current > max {
		return inventoryerrors.ErrStockAboveMax
	}
	return nil
}

// notifyIfLowStock enqueues a low-stock event after a successful write.
// Best effort; a queue failure never fails the write it trails.
func (s *service) notifyIfLowStock(ctx context.Context, item *Item) {
	if s.outbox == nil || !item.IsLowStock() {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.InventoryStockLowEvent{
		EventType:    events.InventoryStockLow,
		RequestID:    rid,
		ItemID:       item.ID.String(),
		Name:         item.Name,
		CurrentStock: item.CurrentStock,
		MaxStock:     item.MaxStock,
		Unit:         item.Unit,
		OccurredAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal low-stock event failed", zap.Error(err))
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("low-stock event begin tx failed", zap.Error(err))
		return
	}

	row := kafka.NewEvent("inventory_item", item.ID.String(), events.InventoryStockLow, events.InventoryStockTopic, rid, payload)
	if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
		s.logger.Error("enqueue low-stock event failed",
			zap.String("item_id", item.ID.String()),
			zap.Error(err),
		)
		_ = tx.Rollback()
		return
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("low-stock event commit failed", zap.Error(err))
	}
}

func mapItemToResponse(item Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		CurrentStock: item.CurrentStock,
		MaxStock:     item.MaxStock,
		Unit:         item.Unit,
		LastUpdated:  item.LastUpdated.UTC().Format(time.RFC3339),
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapLogToResponse(log Log) LogResponse {
	return LogResponse{
		ID:            log.ID.String(),
		ItemName:      log.ItemName,
		PreviousStock: log.PreviousStock,
		NewStock:      log.NewStock,
		UpdateType:    log.UpdateType,
		Timestamp:     log.Timestamp.UTC().Format(time.RFC3339),
		UpdatedBy:     log.UpdatedBy,
		Notes:         log.Notes,
	}
}
