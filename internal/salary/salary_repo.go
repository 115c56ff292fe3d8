package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *Salary) error
	FindByID(ctx context.Context, id string) (*Salary, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error)
	FindActive(ctx context.Context) ([]Salary, error)
	FindByEmployeeAndEffectiveFrom(ctx context.Context, employeeID, effectiveFrom string) (*Salary, error)
	Save(ctx context.Context, record *Salary) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to the caller's transaction. Statements
// issued through the returned repository run on the transaction's
// connection; *sql.Tx is not a TxBeginner, so gorm does not open a
// nested transaction around writes.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, record *Salary) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var record Salary
	err := r.db.WithContext(ctx).
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByEmployee returns every ledger row for one employee, historical
// and current. No ordering is promised; callers sort or resolve.
func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Salary, error) {
	var records []Salary
	err := r.db.WithContext(ctx).
		Find(&records, "employee_id = ?", employeeID).Error
	return records, err
}

func (r *repository) FindActive(ctx context.Context) ([]Salary, error) {
	var records []Salary
	err := r.db.WithContext(ctx).
		Find(&records, "active = ?", true).Error
	return records, err
}

func (r *repository) FindByEmployeeAndEffectiveFrom(
	ctx context.Context,
	employeeID, effectiveFrom string,
) (*Salary, error) {
	var record Salary
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("effective_from = ?", effectiveFrom).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Save(ctx context.Context, record *Salary) error {
	return r.db.WithContext(ctx).Save(record).Error
}
