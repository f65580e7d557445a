package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/steer/internal/inference"
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return inference.ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// errorStatus maps a generation error onto an HTTP status and error type.
func errorStatus(err error) (int, string) {
	if errors.Is(err, inference.ErrInvalidRequest) {
		return http.StatusBadRequest, "invalid_request_error"
	}
	return http.StatusInternalServerError, "server_error"
}
