package timesheeterrors

import (
	"net/http"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet entry not found",
		http.StatusNotFound,
	)
	ErrDuplicateClockIn = apperror.New(
		apperror.CodeConflict,
		"Duplicate clock-in entry",
		http.StatusBadRequest,
	)
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already clocked in",
		http.StatusBadRequest,
	)
	ErrAlreadyCompleted = apperror.New(
		apperror.CodeInvalidState,
		"Timesheet entry is already completed",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid clock time",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date",
		http.StatusBadRequest,
	)
)
