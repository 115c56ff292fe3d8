package employeeerrors

import (
	"net/http"

	"hr-backend/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
