package employeeerrors

import (
	"net/http"

	"github.com/creesler/laundry-pos-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee already exists",
		http.StatusBadRequest,
	)
	ErrNameTaken = apperror.New(
		apperror.CodeConflict,
		"That name is already taken",
		http.StatusBadRequest,
	)
)
