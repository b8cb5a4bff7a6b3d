package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	"github.com/creesler/laundry-pos-backend/internal/period"
	saleerrors "github.com/creesler/laundry-pos-backend/internal/sale/errors"
	"github.com/creesler/laundry-pos-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RangeQuery carries the filter params of the sales list and summary
// endpoints. RefDate is the caller-owned reference date for symbolic
// periods; it defaults to today.
type RangeQuery struct {
	Period    string
	RefDate   string
	StartDate string
	EndDate   string
}

// EmployeeDirectory is the slice of the employee repository sales need:
// write-time verification that a recordedBy reference exists.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=sale_service.go -destination=mock/sale_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q RangeQuery) ([]SaleResponse, error)
	Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error)
	GetByID(ctx context.Context, id string) (SaleResponse, error)
	Create(ctx context.Context, req CreateSaleRequest) (SaleResponse, error)
	Update(ctx context.Context, id string, req UpdateSaleRequest) (SaleResponse, error)
	Delete(ctx context.Context, id string) error
	BulkInsert(ctx context.Context, req BulkSalesRequest) (BulkSalesResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("sale.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sale.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, q RangeQuery) ([]SaleResponse, error) {
	rng, err := s.resolveRange(q, false)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, rng)
	if err != nil {
		s.logger.Error("list sales failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]SaleResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Summary(ctx context.Context, q RangeQuery) (SummaryResponse, error) {
	rng, err := s.resolveRange(q, true)
	if err != nil {
		return SummaryResponse{}, err
	}

	rows, err := s.repo.FindAll(ctx, rng)
	if err != nil {
		s.logger.Error("summary query failed", zap.Error(err))
		return SummaryResponse{}, mapRepositoryError(err)
	}

	sum := Summarize(rows)
	return SummaryResponse{
		CoinTotal:           sum.CoinTotal,
		HopperTotal:         sum.HopperTotal,
		SoapTotal:           sum.SoapTotal,
		VendingTotal:        sum.VendingTotal,
		DropOffAmount1Total: sum.DropOffAmount1Total,
		DropOffAmount2Total: sum.DropOffAmount2Total,
		Total:               sum.Total(),
	}, nil
}

// resolveRange turns the query params into an optional date range. When
// requireRange is set (the summary endpoint) the absence of any usable
// filter is an error rather than "everything".
func (s *service) resolveRange(q RangeQuery, requireRange bool) (*period.Range, error) {
	if q.Period == "" && (q.StartDate == "" || q.EndDate == "") {
		if requireRange {
			return nil, saleerrors.ErrRangeRequired
		}
		return nil, nil
	}

	if q.Period == period.All {
		// explicitly unfiltered
		return nil, nil
	}

	rng, ok := period.FromQuery(q.Period, q.RefDate, q.StartDate, q.EndDate, s.now())
	if !ok {
		if q.Period == "" || q.Period == period.Custom {
			return nil, saleerrors.ErrRangeRequired
		}
		return nil, saleerrors.ErrInvalidPeriod
	}
	return &rng, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SaleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SaleResponse{}, saleerrors.ErrSaleNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SaleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateSaleRequest) (SaleResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date := s.now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return SaleResponse{}, saleerrors.ErrInvalidDate
		}
		date = parsed
	}

	recordedBy, err := s.verifyEmployeeRef(ctx, req.RecordedBy)
	if err != nil {
		return SaleResponse{}, err
	}

	row := &Sale{
		ID:             uuid.New(),
		Date:           date,
		Coin:           req.Coin.Float64(),
		Hopper:         req.Hopper.Float64(),
		Soap:           req.Soap.Float64(),
		Vending:        req.Vending.Float64(),
		DropOffAmount1: req.DropOffAmount1.Float64(),
		DropOffCode:    req.DropOffCode,
		DropOffAmount2: req.DropOffAmount2.Float64(),
		IsSaved:        true,
		RecordedBy:     recordedBy,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create sale persist failed", zap.String("request_id", rid), zap.Error(err))
		return SaleResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create sale success",
		zap.String("request_id", rid),
		zap.String("sale_id", row.ID.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSaleRequest) (SaleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SaleResponse{}, saleerrors.ErrSaleNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SaleResponse{}, mapRepositoryError(err)
	}

	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err == nil {
			row.Date = parsed
		}
	}
	if req.Coin != nil {
		row.Coin = req.Coin.Float64()
	}
	if req.Hopper != nil {
		row.Hopper = req.Hopper.Float64()
	}
	if req.Soap != nil {
		row.Soap = req.Soap.Float64()
	}
	if req.Vending != nil {
		row.Vending = req.Vending.Float64()
	}
	if req.DropOffAmount1 != nil {
		row.DropOffAmount1 = req.DropOffAmount1.Float64()
	}
	if req.DropOffCode != nil {
		row.DropOffCode = *req.DropOffCode
	}
	if req.DropOffAmount2 != nil {
		row.DropOffAmount2 = req.DropOffAmount2.Float64()
	}
	if req.RecordedBy != nil {
		recordedBy, err := s.verifyEmployeeRef(ctx, *req.RecordedBy)
		if err != nil {
			return SaleResponse{}, err
		}
		row.RecordedBy = recordedBy
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update sale persist failed", zap.Error(err))
		return SaleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return saleerrors.ErrSaleNotFound
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete sale failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) BulkInsert(ctx context.Context, req BulkSalesRequest) (BulkSalesResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	rows := make([]Sale, 0, len(req.Entries))
	for _, entry := range req.Entries {
		date := s.now()
		if entry.Date != "" {
			if parsed, err := parseDate(entry.Date); err == nil {
				date = parsed
			}
		}
		rows = append(rows, Sale{
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

	inserted, err := s.repo.InsertBatch(ctx, rows)
	if err != nil {
		s.logger.Error("bulk sales insert failed", zap.String("request_id", rid), zap.Error(err))
		return BulkSalesResponse{}, mapRepositoryError(err)
	}

	total := len(req.Entries)
	message := fmt.Sprintf("Successfully saved all %d sales entries", inserted)
	if inserted < int64(total) {
		message = fmt.Sprintf(
			"Successfully saved %d out of %d sales entries. %d entries were duplicates.",
			inserted, total, int64(total)-inserted,
		)
	}

	s.logger.Info("bulk sales insert done",
		zap.String("request_id", rid),
		zap.Int64("inserted", inserted),
		zap.Int("attempted", total),
	)

	return BulkSalesResponse{
		Message:        message,
		NInserted:      inserted,
		TotalAttempted: total,
	}, nil
}

func (s *service) verifyEmployeeRef(ctx context.Context, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, saleerrors.ErrInvalidEmployeeRef
	}
	if _, err := s.directory.FindByID(ctx, raw); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, saleerrors.ErrInvalidEmployeeRef
		}
		return nil, err
	}
	return &id, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
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

func mapToResponse(row Sale) SaleResponse {
	resp := SaleResponse{
		ID:             row.ID.String(),
		Date:           row.Date.UTC().Format(time.RFC3339),
		Coin:           row.Coin,
		Hopper:         row.Hopper,
		Soap:           row.Soap,
		Vending:        row.Vending,
		DropOffAmount1: row.DropOffAmount1,
		DropOffCode:    row.DropOffCode,
		DropOffAmount2: row.DropOffAmount2,
		IsSaved:        row.IsSaved,
		CreatedAt:      row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      row.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if row.RecordedBy != nil {
		resp.RecordedBy = row.RecordedBy.String()
	}
	return resp
}
