// Package errors gives packview failures a machine-readable [Code].
//
// The CLI prints [UserMessage] to the terminal; the server writes the code
// and message into a JSON error body with the status from [HTTPStatus].
// Codes survive wrapping, so a loader can wrap an I/O failure and the
// handler three calls up still sees FILE_NOT_FOUND:
//
//	raw, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an Error.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"  // bad flag or request parameter
	ErrCodeInvalidData   Code = "INVALID_DATA"   // data file parsed but is not a hierarchy
	ErrCodeInvalidFormat Code = "INVALID_FORMAT" // unknown output format
	ErrCodeInvalidConfig Code = "INVALID_CONFIG" // config file or environment
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND" // data file missing or unreadable
	ErrCodeNodeNotFound  Code = "NODE_NOT_FOUND" // focus path names no node
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// statusOf maps codes that a client can act on. Anything else, including a
// missing data file, is the server's fault and maps to 500.
var statusOf = map[Code]int{
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidFormat: http.StatusBadRequest,
	ErrCodeNodeNotFound:  http.StatusNotFound,
}

// Error carries a Code, a message fit for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// asError finds the outermost *Error in err's chain.
func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage drops the code prefix and cause from coded errors. Other
// errors are returned as their Error string.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus is the response status for err.
func HTTPStatus(err error) int {
	if s, ok := statusOf[GetCode(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}
