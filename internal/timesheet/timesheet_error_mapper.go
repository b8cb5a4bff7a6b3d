package timesheet

import (
	"errors"
	"strings"

	timesheeterrors "github.com/creesler/laundry-pos-backend/internal/timesheet/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timesheeterrors.ErrTimesheetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_timesheet_employee_clock_in" {
			return timesheeterrors.ErrDuplicateClockIn
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_timesheet_employee_clock_in") {
		return timesheeterrors.ErrDuplicateClockIn
	}

	return err
}
