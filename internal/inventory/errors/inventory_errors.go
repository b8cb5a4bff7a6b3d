package inventoryerrors

import (
	"net/http"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Inventory item not found",
		http.StatusNotFound,
	)
	ErrItemAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Inventory item already exists",
		http.StatusBadRequest,
	)
	ErrNegativeStock = apperror.New(
		apperror.CodeInvalidInput,
		"Stock values cannot be negative",
		http.StatusBadRequest,
	)
	ErrStockAboveMax = apperror.New(
		apperror.CodeInvalidInput,
		"Current stock cannot exceed max stock",
		http.StatusBadRequest,
	)
)
