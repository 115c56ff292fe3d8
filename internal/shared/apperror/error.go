package apperror

import "fmt"

// AppError is the typed failure every service returns: a stable machine
// code, a caller-safe message, and the HTTP status the transport should
// use. The wrapped cause stays internal.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on the taxonomy fields, not pointer identity, so a sentinel
// carrying a cause still compares equal to its bare form.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message && e.HTTPStatus == t.HTTPStatus
}

// WithErr clones the sentinel around a concrete cause. The clone still
// satisfies errors.Is against the original.
func (e *AppError) WithErr(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap builds a typed error around an existing cause.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
