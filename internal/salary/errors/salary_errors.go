package salaryerrors

import (
	"net/http"

	"hr-backend/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary record not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidDateRange,
		"End date must not be before the effective date",
		http.StatusBadRequest,
	)
	ErrSalaryAlreadyRetired = apperror.New(
		apperror.CodeInvalidState,
		"Salary record is already inactive",
		http.StatusConflict,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Salary amount must not be negative",
		http.StatusBadRequest,
	)
)
