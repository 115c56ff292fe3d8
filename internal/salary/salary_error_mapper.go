package salary

import (
	"errors"
	"net/http"
	"strings"

	employeeerrors "hr-backend/internal/employee/errors"
	salaryerrors "hr-backend/internal/salary/errors"
	"hr-backend/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.Wrap(err,
				apperror.CodeConflict,
				"Conflicting salary record already exists",
				http.StatusConflict,
			)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return apperror.Wrap(err,
			apperror.CodeConflict,
			"Conflicting salary record already exists",
			http.StatusConflict,
		)
	}

	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, salaryerrors.ErrSalaryNotFound)
}

func isDirectoryNotFound(err error) bool {
	return errors.Is(err, employeeerrors.ErrEmployeeNotFound)
}
