package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
