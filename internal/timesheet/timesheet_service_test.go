package timesheet

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/creesler/laundry-pos-backend/internal/employee"
	timesheeterrors "github.com/creesler/laundry-pos-backend/internal/timesheet/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                   func(ctx context.Context, t *Timesheet) error
	findAllFn                  func(ctx context.Context, q ListQuery) ([]Timesheet, error)
	findByIDFn                 func(ctx context.Context, id string) (*Timesheet, error)
	findByEmployeeAndClockInFn func(ctx context.Context, name string, clockIn time.Time) (*Timesheet, error)
	findPendingByEmployeeFn    func(ctx context.Context, name string) (*Timesheet, error)
	updateFn                   func(ctx context.Context, t *Timesheet) error
	deleteFn                   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, t *Timesheet) error {
	return f.createFn(ctx, t)
}
func (f *fakeRepo) FindAll(ctx context.Context, q ListQuery) ([]Timesheet, error) {
	return f.findAllFn(ctx, q)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Timesheet, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmployeeAndClockIn(ctx context.Context, name string, clockIn time.Time) (*Timesheet, error) {
	return f.findByEmployeeAndClockInFn(ctx, name, clockIn)
}
func (f *fakeRepo) FindPendingByEmployee(ctx context.Context, name string) (*Timesheet, error) {
	return f.findPendingByEmployeeFn(ctx, name)
}
func (f *fakeRepo) Update(ctx context.Context, t *Timesheet) error {
	return f.updateFn(ctx, t)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeDirectory struct {
	findByNameFn func(ctx context.Context, name string) (*employee.Employee, error)
}

func (f *fakeDirectory) FindByName(ctx context.Context, name string) (*employee.Employee, error) {
	return f.findByNameFn(ctx, name)
}

func noPending(ctx context.Context, name string) (*Timesheet, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestService(repo *fakeRepo, dir *fakeDirectory, now time.Time) *service {
	if dir == nil {
		dir = &fakeDirectory{findByNameFn: func(ctx context.Context, name string) (*employee.Employee, error) {
			return &employee.Employee{ID: uuid.New(), Name: name}, nil
		}}
	}
	svc := NewService(repo, dir).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDeriveDuration(t *testing.T) {
	clockIn := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	t.Run("completed shift", func(t *testing.T) {
		clockOut := clockIn.Add(8*time.Hour + 30*time.Minute)
		row := Timesheet{ClockIn: clockIn, ClockOut: &clockOut}
		row.DeriveDuration()
		assert.Equal(t, 510, row.Duration)
		assert.Equal(t, StatusCompleted, row.Status)
	})

	t.Run("seconds round to nearest minute", func(t *testing.T) {
		clockOut := clockIn.Add(45*time.Minute + 40*time.Second)
		row := Timesheet{ClockIn: clockIn, ClockOut: &clockOut}
		row.DeriveDuration()
		assert.Equal(t, 46, row.Duration)
	})

	t.Run("no clock-out stays pending", func(t *testing.T) {
		row := Timesheet{ClockIn: clockIn, Duration: 99, Status: StatusCompleted}
		row.DeriveDuration()
		assert.Equal(t, 0, row.Duration)
		assert.Equal(t, StatusPending, row.Status)
	})
}

func TestService_ClockIn(t *testing.T) {
	now := time.Date(2024, time.March, 4, 8, 15, 0, 0, time.UTC)

	var saved Timesheet
	repo := &fakeRepo{
		findPendingByEmployeeFn: noPending,
		createFn: func(ctx context.Context, row *Timesheet) error {
			saved = *row
			return nil
		},
	}

	svc := newTestService(repo, nil, now)
	resp, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeName: "Maria"})
	assert.NoError(t, err)
	assert.Equal(t, "Maria", saved.EmployeeName)
	assert.Equal(t, now, saved.ClockIn)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), saved.Date)
	assert.Equal(t, StatusPending, saved.Status)
	assert.Equal(t, 0, resp.Duration)
}

func TestService_ClockIn_AlreadyPending(t *testing.T) {
	repo := &fakeRepo{
		findPendingByEmployeeFn: func(ctx context.Context, name string) (*Timesheet, error) {
			return &Timesheet{EmployeeName: name, Status: StatusPending}, nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	_, err := svc.ClockIn(context.Background(), ClockInRequest{EmployeeName: "Maria"})
	assert.ErrorIs(t, err, timesheeterrors.ErrAlreadyClockedIn)
}

func TestService_ClockOut(t *testing.T) {
	id := uuid.New()
	clockIn := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)
	now := clockIn.Add(8*time.Hour + 30*time.Minute)

	var updated Timesheet
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, _ string) (*Timesheet, error) {
			return &Timesheet{ID: id, EmployeeName: "Maria", ClockIn: clockIn, Status: StatusPending}, nil
		},
		updateFn: func(ctx context.Context, row *Timesheet) error {
			updated = *row
			return nil
		},
	}

	svc := newTestService(repo, nil, now)
	resp, err := svc.ClockOut(context.Background(), id.String(), ClockOutRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 510, updated.Duration)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Equal(t, 510, resp.Duration)
}

func TestService_ClockOut_AlreadyCompleted(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, _ string) (*Timesheet, error) {
			return &Timesheet{ID: id, Status: StatusCompleted}, nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	_, err := svc.ClockOut(context.Background(), id.String(), ClockOutRequest{})
	assert.ErrorIs(t, err, timesheeterrors.ErrAlreadyCompleted)
}

func TestService_ClockOut_InvalidID(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, time.Now())
	_, err := svc.ClockOut(context.Background(), "nope", ClockOutRequest{})
	assert.ErrorIs(t, err, timesheeterrors.ErrTimesheetNotFound)
}

func TestParseCompactDuration(t *testing.T) {
	assert.Equal(t, 465, parseCompactDuration("7h 45m"))
	assert.Equal(t, 465, parseCompactDuration("7h45m"))
	assert.Equal(t, 60, parseCompactDuration("1h 0m"))
	assert.Equal(t, 0, parseCompactDuration("lots"))
	assert.Equal(t, 0, parseCompactDuration(""))
	assert.Equal(t, 0, parseCompactDuration("45m"))
}

func TestService_BulkFromSummary(t *testing.T) {
	var saved []Timesheet
	repo := &fakeRepo{
		createFn: func(ctx context.Context, row *Timesheet) error {
			saved = append(saved, *row)
			return nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	resp, err := svc.BulkFromSummary(context.Background(), BulkTimesheetRequest{
		EmployeeName: "Maria",
		Entries: []BulkEntry{
			{Date: "2024-03-04", Duration: "7h 45m"},
			{Date: "2024-03-05", Duration: "garbled"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.SavedCount)
	assert.Empty(t, resp.Errors)

	assert.Equal(t, 465, saved[0].Duration)
	assert.Equal(t, StatusCompleted, saved[0].Status)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), saved[0].ClockIn)
	assert.Equal(t, saved[0].ClockIn.Add(465*time.Minute), *saved[0].ClockOut)

	// unparseable duration counts as zero minutes, not an error
	assert.Equal(t, 0, saved[1].Duration)
	assert.Equal(t, StatusCompleted, saved[1].Status)
}

func TestService_BulkFromSummary_UnknownEmployeeAbortsAll(t *testing.T) {
	created := 0
	repo := &fakeRepo{
		createFn: func(ctx context.Context, row *Timesheet) error {
			created++
			return nil
		},
	}
	dir := &fakeDirectory{findByNameFn: func(ctx context.Context, name string) (*employee.Employee, error) {
		return nil, gorm.ErrRecordNotFound
	}}

	svc := newTestService(repo, dir, time.Now())
	_, err := svc.BulkFromSummary(context.Background(), BulkTimesheetRequest{
		EmployeeName: "Ghost",
		Entries:      []BulkEntry{{Date: "2024-03-04", Duration: "1h 0m"}},
	})
	assert.ErrorIs(t, err, timesheeterrors.ErrEmployeeNotFound)
	assert.Equal(t, 0, created)
}

func TestService_BulkFromSummary_CollectsPerEntryErrors(t *testing.T) {
	calls := 0
	repo := &fakeRepo{
		createFn: func(ctx context.Context, row *Timesheet) error {
			calls++
			if calls == 1 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	resp, err := svc.BulkFromSummary(context.Background(), BulkTimesheetRequest{
		EmployeeName: "Maria",
		Entries: []BulkEntry{
			{Date: "2024-03-04", Duration: "1h 0m"},
			{Date: "2024-03-05", Duration: "1h 0m"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.SavedCount)
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "2024-03-04", resp.Errors[0].Date)
	assert.Contains(t, resp.Message, "1 out of 2")
}

func TestService_BulkFromSummary_UnparseableDate(t *testing.T) {
	created := 0
	repo := &fakeRepo{
		createFn: func(ctx context.Context, row *Timesheet) error {
			created++
			return nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	resp, err := svc.BulkFromSummary(context.Background(), BulkTimesheetRequest{
		EmployeeName: "Maria",
		Entries: []BulkEntry{
			{Date: "not-a-date", Duration: "1h 0m"},
			{Date: "2024-03-05", Duration: "1h 0m"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.SavedCount)
	assert.Equal(t, 1, created)
	assert.Len(t, resp.Errors, 1)
	assert.Equal(t, "not-a-date", resp.Errors[0].Date)
	assert.Equal(t, timesheeterrors.ErrInvalidDate.Message, resp.Errors[0].Error)
}

func TestService_List_PassesFilters(t *testing.T) {
	var gotQuery ListQuery
	repo := &fakeRepo{
		findAllFn: func(ctx context.Context, q ListQuery) ([]Timesheet, error) {
			gotQuery = q
			return nil, nil
		},
	}

	svc := newTestService(repo, nil, time.Now())
	_, err := svc.List(context.Background(), ListQuery{EmployeeName: "Maria", Status: StatusPending})
	assert.NoError(t, err)
	assert.Equal(t, "Maria", gotQuery.EmployeeName)
	assert.Equal(t, StatusPending, gotQuery.Status)
}
