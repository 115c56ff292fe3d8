package salary

import (
	"context"
	"database/sql"
	"time"

	salaryerrors "hr-backend/internal/salary/errors"
	"hr-backend/internal/shared/contextutil"
	"hr-backend/internal/shared/dateformat"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	CreateOrAmend(ctx context.Context, employeeEmail string, req AssignSalaryRequest) (SalaryResponse, error)
	Amend(ctx context.Context, employeeEmail, effectiveFrom string, req AmendSalaryRequest) (SalaryResponse, error)
	Retire(ctx context.Context, employeeEmail, effectiveFrom string) error
	GetLatest(ctx context.Context) ([]EmployeeSalaryView, error)
	GetHistory(ctx context.Context, employeeID string) ([]EmployeeSalaryView, error)
	GetByID(ctx context.Context, id string) (SalaryResponse, error)
	Exists(ctx context.Context, employeeEmail, effectiveFrom string) (bool, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	projector *Projector
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, directory, time.Now, logger...)
}

// NewServiceWithClock injects the current-date provider; production wiring
// passes time.Now, tests pin a date.
func NewServiceWithClock(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		projector: NewProjector(directory),
		now:       now,
		logger:    l,
	}
}

// CreateOrAmend assigns today's salary for the employee. A second
// assignment on the same calendar day amends the existing row in place;
// any other date opens a new active row and closes the previous one, so
// the employee ends the call with exactly one active record.
func (s *service) CreateOrAmend(
	ctx context.Context,
	employeeEmail string,
	req AssignSalaryRequest,
) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount < 0 {
		return SalaryResponse{}, salaryerrors.ErrNegativeAmount
	}

	empl, err := s.directory.GetByEmail(ctx, employeeEmail)
	if err != nil {
		s.logger.Warn("assign salary employee lookup failed",
			zap.String("request_id", rid),
			zap.String("email", employeeEmail),
			zap.Error(err),
		)
		return SalaryResponse{}, err
	}

	employeeID, err := uuid.Parse(empl.ID)
	if err != nil {
		return SalaryResponse{}, err
	}

	today := dateformat.Today(s.now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign salary begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sameDay, err := qtx.FindByEmployeeAndEffectiveFrom(ctx, empl.ID, today)
	if err != nil && !isNotFound(mapRepositoryError(err)) {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	var result *Salary
	if sameDay != nil {
		// Same-day amendment: correct today's entry instead of opening a
		// new historical row. A row retired earlier today is reopened.
		wasActive := sameDay.Active
		sameDay.Amount = req.Amount
		sameDay.Active = true
		sameDay.EffectiveTo = nil

		if err := qtx.Save(ctx, sameDay); err != nil {
			return SalaryResponse{}, mapRepositoryError(err)
		}
		if !wasActive {
			if err := s.closeOtherActive(ctx, qtx, empl.ID, sameDay.ID, today); err != nil {
				return SalaryResponse{}, err
			}
		}
		result = sameDay
	} else {
		newRecord := &Salary{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			Amount:        req.Amount,
			EffectiveFrom: today,
			EffectiveTo:   nil,
			Active:        true,
		}
		if err := qtx.Create(ctx, newRecord); err != nil {
			return SalaryResponse{}, mapRepositoryError(err)
		}
		if err := s.closeOtherActive(ctx, qtx, empl.ID, newRecord.ID, today); err != nil {
			return SalaryResponse{}, err
		}
		result = newRecord
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign salary commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}

	s.logger.Info("assign salary success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID),
		zap.String("effective_from", today),
		zap.Int("amount", req.Amount),
	)

	return mapToResponse(*result), nil
}

// closeOtherActive end-dates every active row of the employee except keep,
// stamping closeDate as their EffectiveTo.
func (s *service) closeOtherActive(
	ctx context.Context,
	qtx Repository,
	employeeID string,
	keep uuid.UUID,
	closeDate string,
) error {
	records, err := qtx.FindByEmployee(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}

	for i := range records {
		rec := &records[i]
		if rec.ID == keep || !rec.Active {
			continue
		}
		end := closeDate
		rec.EffectiveTo = &end
		rec.Active = false
		if err := qtx.Save(ctx, rec); err != nil {
			return mapRepositoryError(err)
		}
	}
	return nil
}

// Amend is a direct admin correction of a single ledger row, addressed by
// the employee's email and the row's current effective date. Supplying an
// end date also closes the row. The employee's other rows are not
// re-checked; the correction edits exactly one record.
func (s *service) Amend(
	ctx context.Context,
	employeeEmail, effectiveFrom string,
	req AmendSalaryRequest,
) (SalaryResponse, error) {
	if req.Amount < 0 {
		return SalaryResponse{}, salaryerrors.ErrNegativeAmount
	}

	if _, err := dateformat.Parse(req.EffectiveFrom); err != nil {
		return SalaryResponse{}, err
	}

	closing := false
	if req.EffectiveTo != "" {
		cmp, err := dateformat.Compare(req.EffectiveTo, req.EffectiveFrom)
		if err != nil {
			return SalaryResponse{}, err
		}
		if cmp < 0 {
			return SalaryResponse{}, salaryerrors.ErrInvalidDateRange
		}
		closing = true
	}

	empl, err := s.directory.GetByEmail(ctx, employeeEmail)
	if err != nil {
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndEffectiveFrom(ctx, empl.ID, effectiveFrom)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	record.Amount = req.Amount
	record.EffectiveFrom = req.EffectiveFrom
	if closing {
		end := req.EffectiveTo
		record.EffectiveTo = &end
		record.Active = false
	}

	if err := qtx.Save(ctx, record); err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryResponse{}, err
	}

	s.logger.Info("amend salary success",
		zap.String("employee_id", empl.ID),
		zap.String("effective_from", record.EffectiveFrom),
		zap.Bool("closed", closing),
	)

	return mapToResponse(*record), nil
}

// Retire soft-deletes the addressed row: end-dated today and flagged
// inactive, never removed. Retiring an already-inactive row is reported
// as a typed failure and leaves the row untouched.
func (s *service) Retire(ctx context.Context, employeeEmail, effectiveFrom string) error {
	empl, err := s.directory.GetByEmail(ctx, employeeEmail)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndEffectiveFrom(ctx, empl.ID, effectiveFrom)
	if err != nil {
		return mapRepositoryError(err)
	}

	if !record.Active {
		return salaryerrors.ErrSalaryAlreadyRetired
	}

	today := dateformat.Today(s.now())
	record.EffectiveTo = &today
	record.Active = false

	if err := qtx.Save(ctx, record); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("retire salary success",
		zap.String("employee_id", empl.ID),
		zap.String("effective_from", effectiveFrom),
	)

	return nil
}

// GetLatest returns one view per employee: the latest-dated active row,
// reduced from the unordered active set.
func (s *service) GetLatest(ctx context.Context) ([]EmployeeSalaryView, error) {
	records, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	latest, err := LatestPerEmployee(records)
	if err != nil {
		return nil, err
	}

	return s.projector.ProjectAll(ctx, latest)
}

// GetHistory returns every ledger row of one employee as views,
// historical rows included.
func (s *service) GetHistory(ctx context.Context, employeeID string) ([]EmployeeSalaryView, error) {
	// Validates the employee exists before touching the ledger.
	if _, err := s.directory.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return s.projector.ProjectAll(ctx, records)
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*record), nil
}

// Exists reports whether the employee has a ledger row with the given
// effective date. A missing employee yields false, not an error; a
// malformed date is still rejected.
func (s *service) Exists(ctx context.Context, employeeEmail, effectiveFrom string) (bool, error) {
	if _, err := dateformat.Parse(effectiveFrom); err != nil {
		return false, err
	}

	empl, err := s.directory.GetByEmail(ctx, employeeEmail)
	if err != nil {
		if isDirectoryNotFound(err) {
			return false, nil
		}
		return false, err
	}

	_, err = s.repo.FindByEmployeeAndEffectiveFrom(ctx, empl.ID, effectiveFrom)
	if err != nil {
		if isNotFound(mapRepositoryError(err)) {
			return false, nil
		}
		return false, mapRepositoryError(err)
	}

	return true, nil
}

func mapToResponse(record Salary) SalaryResponse {
	return SalaryResponse{
		ID:            record.ID.String(),
		EmployeeID:    record.EmployeeID.String(),
		Amount:        record.Amount,
		EffectiveFrom: record.EffectiveFrom,
		EffectiveTo:   record.EffectiveTo,
		Active:        record.Active,
	}
}
