package timesheet

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	"github.com/creesler/laundry-pos-backend/internal/shared/contextutil"
	timesheeterrors "github.com/creesler/laundry-pos-backend/internal/timesheet/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// durationPattern matches the compact sheet form "7h 45m". Anything else
// counts as zero minutes.
var durationPattern = regexp.MustCompile(`(\d+)h\s*(\d+)m`)

// EmployeeDirectory is the slice of the employee repository timesheets need:
// existence checks by name before synthesizing bulk rows.
type EmployeeDirectory interface {
	FindByName(ctx context.Context, name string) (*employee.Employee, error)
}

//go:generate mockgen -source=timesheet_service.go -destination=mock/timesheet_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery) ([]TimesheetResponse, error)
	GetByID(ctx context.Context, id string) (TimesheetResponse, error)
	ClockIn(ctx context.Context, req ClockInRequest) (TimesheetResponse, error)
	ClockOut(ctx context.Context, id string, req ClockOutRequest) (TimesheetResponse, error)
	Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error)
	Delete(ctx context.Context, id string) error
	BulkFromSummary(ctx context.Context, req BulkTimesheetRequest) (BulkTimesheetResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]TimesheetResponse, error) {
	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("list timesheets failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]TimesheetResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (TimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	clockIn := s.now()
	if req.ClockIn != "" {
		parsed, err := parseClockTime(req.ClockIn)
		if err != nil {
			return TimesheetResponse{}, timesheeterrors.ErrInvalidClockTime
		}
		clockIn = parsed
	}

	if _, err := s.repo.FindPendingByEmployee(ctx, req.EmployeeName); err == nil {
		return TimesheetResponse{}, timesheeterrors.ErrAlreadyClockedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	row := &Timesheet{
		ID:           uuid.New(),
		EmployeeName: req.EmployeeName,
		Date:         startOfDay(clockIn),
		ClockIn:      clockIn,
	}
	row.DeriveDuration()

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("clock-in persist failed",
			zap.String("request_id", rid),
			zap.String("employee", req.EmployeeName),
			zap.Error(err),
		)
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("clock-in recorded",
		zap.String("request_id", rid),
		zap.String("employee", req.EmployeeName),
		zap.Time("clock_in", clockIn),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, id string, req ClockOutRequest) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	if row.Status == StatusCompleted {
		return TimesheetResponse{}, timesheeterrors.ErrAlreadyCompleted
	}

	clockOut := s.now()
	if req.ClockOut != "" {
		parsed, err := parseClockTime(req.ClockOut)
		if err != nil {
			return TimesheetResponse{}, timesheeterrors.ErrInvalidClockTime
		}
		clockOut = parsed
	}

	row.ClockOut = &clockOut
	row.DeriveDuration()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("clock-out persist failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTimesheetRequest) (TimesheetResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}

	if req.ClockIn != nil {
		parsed, err := parseClockTime(*req.ClockIn)
		if err != nil {
			return TimesheetResponse{}, timesheeterrors.ErrInvalidClockTime
		}
		row.ClockIn = parsed
		row.Date = startOfDay(parsed)
	}
	if req.ClockOut != nil {
		if *req.ClockOut == "" {
			row.ClockOut = nil
		} else {
			parsed, err := parseClockTime(*req.ClockOut)
			if err != nil {
				return TimesheetResponse{}, timesheeterrors.ErrInvalidClockTime
			}
			row.ClockOut = &parsed
		}
	}
	row.DeriveDuration()

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("update timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return timesheeterrors.ErrTimesheetNotFound
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete timesheet failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

// BulkFromSummary materializes completed entries from a summary sheet. The
// employee must exist before anything is written; after that each entry is
// persisted independently and failures are collected, not fatal.
func (s *service) BulkFromSummary(ctx context.Context, req BulkTimesheetRequest) (BulkTimesheetResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.directory.FindByName(ctx, req.EmployeeName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BulkTimesheetResponse{}, timesheeterrors.ErrEmployeeNotFound
		}
		return BulkTimesheetResponse{}, err
	}

	var (
		saved int
		errs  []BulkError
	)
	for _, entry := range req.Entries {
		day, err := parseClockTime(entry.Date)
		if err != nil {
			errs = append(errs, BulkError{Date: entry.Date, Error: timesheeterrors.ErrInvalidDate.Message})
			continue
		}

		minutes := parseCompactDuration(entry.Duration)
		clockIn := startOfDay(day)
		clockOut := clockIn.Add(time.Duration(minutes) * time.Minute)

		row := &Timesheet{
			ID:           uuid.New(),
			EmployeeName: req.EmployeeName,
			Date:         clockIn,
			ClockIn:      clockIn,
			ClockOut:     &clockOut,
		}
		row.DeriveDuration()

		if err := s.repo.Create(ctx, row); err != nil {
			errs = append(errs, BulkError{Date: entry.Date, Error: mapRepositoryError(err).Error()})
			continue
		}
		saved++
	}

	message := fmt.Sprintf("Successfully saved all %d timesheet entries", saved)
	if len(errs) > 0 {
		message = fmt.Sprintf("Saved %d out of %d timesheet entries", saved, len(req.Entries))
	}

	s.logger.Info("bulk timesheet synthesis done",
		zap.String("request_id", rid),
		zap.String("employee", req.EmployeeName),
		zap.Int("saved", saved),
		zap.Int("failed", len(errs)),
	)

	return BulkTimesheetResponse{
		Message:    message,
		SavedCount: saved,
		Errors:     errs,
	}, nil
}

// parseCompactDuration extracts minutes from a "Xh Ym" string. Strings that
// do not match the pattern count as zero.
func parseCompactDuration(raw string) int {
	m := durationPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

func parseClockTime(raw string) (time.Time, error) {
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

func mapToResponse(row Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:           row.ID.String(),
		EmployeeName: row.EmployeeName,
		Date:         row.Date.UTC().Format(time.RFC3339),
		ClockIn:      row.ClockIn.UTC().Format(time.RFC3339),
		Duration:     row.Duration,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    row.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if row.ClockOut != nil {
		resp.ClockOut = row.ClockOut.UTC().Format(time.RFC3339)
	}
	return resp
}
