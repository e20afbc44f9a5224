package exceptions

import (
	"errors"
	"net/http"
)

// Exception is a domain failure that carries the HTTP status it maps to.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: statusCode,
	}
}

func BadRequest(message string) *Exception {
	return New(http.StatusBadRequest, message)
}

// StatusCode returns the status carried by err, or 500 for anything that is not an Exception.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsException reports whether err is, or wraps, an Exception.
func IsException(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}
