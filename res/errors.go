package res

import (
	"errors"
	"net/http"
)

type ErrorRes struct {
	Err        error
	StatusCode int
}

func (e *ErrorRes) Error() string {
	return e.Err.Error()
}

func (e *ErrorRes) Unwrap() error {
	return e.Err
}

// Missing or malformed request parameter
func NewValidationError(err error) *ErrorRes {
	return &ErrorRes{
		Err:        err,
		StatusCode: http.StatusBadRequest,
	}
}

// A query produced zero results where one was expected
func NewNotFoundError(message string) *ErrorRes {
	return &ErrorRes{
		Err:        errors.New(message),
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string) *ErrorRes {
	return &ErrorRes{
		Err:        errors.New(message),
		StatusCode: http.StatusConflict,
	}
}

// Connectivity, timeout, malformed query or deserialization failure. The
// underlying message is passed through to the caller.
func NewStoreError(err error) *ErrorRes {
	return &ErrorRes{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
	}
}
