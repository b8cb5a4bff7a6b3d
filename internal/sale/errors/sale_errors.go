package saleerrors

import (
	"net/http"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
)

var (
	ErrSaleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Sale not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeRef = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrDuplicateSale = apperror.New(
		apperror.CodeConflict,
		"A sale with this date and drop-off code already exists",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format",
		http.StatusBadRequest,
	)
	ErrRangeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either period or both startDate and endDate are required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid period specified",
		http.StatusBadRequest,
	)
)
