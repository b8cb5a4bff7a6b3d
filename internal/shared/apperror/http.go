package apperror

import (
	"errors"
	"net/http"
	"os"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP normalizes any error into something a handler can write out.
// Unknown errors become a 500; their detail is exposed only outside
// production so internals never leak to the dashboard.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		var details any
		if appErr.Err != nil && !isProduction() {
			details = appErr.Err.Error()
		}
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	var details any
	if err != nil && !isProduction() {
		details = err.Error()
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
		Details: details,
	}
}

func isProduction() bool {
	return os.Getenv("GIN_MODE") == "release" || os.Getenv("APP_ENV") == "production"
}
