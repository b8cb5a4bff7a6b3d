package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/inventory"
	"github.com/creesler/laundry-pos-backend/internal/sale"
	"github.com/creesler/laundry-pos-backend/internal/shared/contextutil"
	"github.com/creesler/laundry-pos-backend/internal/timesheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MessageSuccess       = "Sync successful"
	MessagePartialErrors = "Sync completed with some errors"
)

// The reconciler needs only a slice of each feature's repository. Categories
// run sequentially so an upsert can observe an insert from the same request.

type SaleStore interface {
	InsertBatch(ctx context.Context, rows []sale.Sale) (int64, error)
}

type TimesheetStore interface {
	FindByEmployeeAndClockIn(ctx context.Context, employeeName string, clockIn time.Time) (*timesheet.Timesheet, error)
	Create(ctx context.Context, t *timesheet.Timesheet) error
	Update(ctx context.Context, t *timesheet.Timesheet) error
}

type InventoryStore interface {
	Upsert(ctx context.Context, item *inventory.Item) error
	DeleteByName(ctx context.Context, name string) error
}

type InventoryLogStore interface {
	CreateLog(ctx context.Context, log *inventory.Log) error
}

//go:generate mockgen -source=sync_service.go -destination=mock/sync_service_mock.go -package=mock
type Service interface {
	Process(ctx context.Context, req SyncRequest) (SyncResponse, error)
}

type service struct {
	sales      SaleStore
	timesheets TimesheetStore
	items      InventoryStore
	logs       InventoryLogStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	sales SaleStore,
	timesheets TimesheetStore,
	items InventoryStore,
	logs InventoryLogStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("sync.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sync.service")
	}
	return &service{
		sales:      sales,
		timesheets: timesheets,
		items:      items,
		logs:       logs,
		logger:     l,
		now:        time.Now,
	}
}

// Process reconciles all four categories best effort. Nothing is
// transactional across records; per-record failures are accumulated and the
// remaining records still run.
func (s *service) Process(ctx context.Context, req SyncRequest) (SyncResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	resp := SyncResponse{}

	s.processSales(ctx, req.Sales, &resp)
	s.processTimesheets(ctx, req.Timesheet, &resp)
	s.processInventory(ctx, req.Inventory, &resp)
	s.processLogs(ctx, req.InventoryLogs, &resp)

	resp.Message = MessageSuccess
	if len(resp.Errors) > 0 {
		resp.Message = MessagePartialErrors
	}

	s.logger.Info("sync done",
		zap.String("request_id", rid),
		zap.Int("sales", resp.SavedSalesCount),
		zap.Int("timesheets", resp.SavedTimesheetsCount),
		zap.Int("inventory", resp.SavedInventoryCount),
		zap.Int("logs", resp.SavedLogsCount),
		zap.Int("errors", len(resp.Errors)),
	)
	return resp, nil
}

func (s *service) processSales(ctx context.Context, entries []SaleEntry, resp *SyncResponse) {
	if len(entries) == 0 {
		return
	}

	rows := make([]sale.Sale, 0, len(entries))
	for _, entry := range entries {
		date := s.now()
		if entry.Date != "" {
			if parsed, err := parseTime(entry.Date); err == nil {
				date = parsed
			}
		}
		rows = append(rows, sale.Sale{
			ID:             uuid.New(),
			Date:           date,
			Coin:           entry.Coin.Float64(),
			Hopper:         entry.Hopper.Float64(),
			Soap:           entry.Soap.Float64(),
			Vending:        entry.Vending.Float64(),
			DropOffAmount1: entry.DropOffAmount1.Float64(),
			DropOffCode:    entry.DropOffCode,
			DropOffAmount2: entry.DropOffAmount2.Float64(),
			IsSaved:        coerceSavedFlag(entry.IsSaved),
		})
	}

	inserted, err := s.sales.InsertBatch(ctx, rows)
	if err != nil {
		resp.Errors = append(resp.Errors, SyncError{Type: "sales", Error: err.Error()})
		return
	}
	resp.SavedSalesCount = int(inserted)

	// rows skipped by the uniqueness rule surface as an error entry, not
	// silently as a lower count
	if skipped := len(rows) - int(inserted); skipped > 0 {
		resp.Errors = append(resp.Errors, SyncError{
			Type:  "sales",
			Error: fmt.Sprintf("%d duplicate entries skipped", skipped),
		})
	}
}

func (s *service) processTimesheets(ctx context.Context, entries []TimesheetEntry, resp *SyncResponse) {
	for _, entry := range entries {
		if err := s.reconcileTimesheet(ctx, entry); err != nil {
			resp.Errors = append(resp.Errors, SyncError{Type: "timesheet", Error: err.Error()})
			continue
		}
		resp.SavedTimesheetsCount++
	}
}

func (s *service) reconcileTimesheet(ctx context.Context, entry TimesheetEntry) error {
	if entry.EmployeeName == "" || entry.ClockIn == "" {
		return fmt.Errorf("timesheet entry requires employeeName and clockIn")
	}

	clockIn, err := parseTime(entry.ClockIn)
	if err != nil {
		return fmt.Errorf("invalid clockIn %q", entry.ClockIn)
	}

	var clockOut *time.Time
	if entry.ClockOut != "" {
		parsed, err := parseTime(entry.ClockOut)
		if err != nil {
			return fmt.Errorf("invalid clockOut %q", entry.ClockOut)
		}
		clockOut = &parsed
	}

	row, err := s.timesheets.FindByEmployeeAndClockIn(ctx, entry.EmployeeName, clockIn)
	switch {
	case err == nil:
		row.ClockOut = clockOut
		row.DeriveDuration()
		return s.timesheets.Update(ctx, row)
	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := &timesheet.Timesheet{
			ID:           uuid.New(),
			EmployeeName: entry.EmployeeName,
			Date:         startOfDay(clockIn),
			ClockIn:      clockIn,
			ClockOut:     clockOut,
		}
		fresh.DeriveDuration()
		return s.timesheets.Create(ctx, fresh)
	default:
		return err
	}
}

func (s *service) processInventory(ctx context.Context, entries []InventoryEntry, resp *SyncResponse) {
	for _, entry := range entries {
		if entry.Name == "" {
			resp.Errors = append(resp.Errors, SyncError{Type: "inventory", Error: "inventory entry requires a name"})
			continue
		}

		if entry.IsDeleted {
			if err := s.items.DeleteByName(ctx, entry.Name); err != nil {
				resp.Errors = append(resp.Errors, SyncError{Type: "inventory", Error: err.Error()})
				continue
			}
			resp.Inventory = append(resp.Inventory, InventoryResult{Name: entry.Name, Deleted: true})
			resp.SavedInventoryCount++
			continue
		}

		unit := entry.Unit
		if unit == "" {
			unit = "units"
		}
		item := &inventory.Item{
			ID:           uuid.New(),
			Name:         entry.Name,
			CurrentStock: entry.CurrentStock.Float64(),
			MaxStock:     entry.MaxStock.Float64(),
			Unit:         unit,
			LastUpdated:  s.now(),
		}
		if err := s.items.Upsert(ctx, item); err != nil {
			resp.Errors = append(resp.Errors, SyncError{Type: "inventory", Error: err.Error()})
			continue
		}
		resp.Inventory = append(resp.Inventory, InventoryResult{Name: entry.Name})
		resp.SavedInventoryCount++
	}
}

func (s *service) processLogs(ctx context.Context, entries []LogEntry, resp *SyncResponse) {
	for _, entry := range entries {
		ts := s.now()
		if entry.Timestamp != "" {
			if parsed, err := parseTime(entry.Timestamp); err == nil {
				ts = parsed
			}
		}
		row := &inventory.Log{
			ID:            uuid.New(),
			ItemName:      entry.ItemName,
			PreviousStock: entry.PreviousStock.Float64(),
			NewStock:      entry.NewStock.Float64(),
			UpdateType:    entry.UpdateType,
			Timestamp:     ts,
			UpdatedBy:     entry.UpdatedBy,
			Notes:         entry.Notes,
		}
		if row.UpdateType == "" {
			row.UpdateType = inventory.UpdateTypeOther
		}
		if err := s.logs.CreateLog(ctx, row); err != nil {
			resp.Errors = append(resp.Errors, SyncError{Type: "inventoryLogs", Error: err.Error()})
			continue
		}
		resp.SavedLogsCount++
	}
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", raw)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func coerceSavedFlag(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return true
	}
}
