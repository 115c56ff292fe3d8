package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidDate      = "INVALID_DATE"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
