package employee_test

import (
	"context"
	"testing"
	"time"

	"hr-backend/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Employee writes share a transaction with the outbox insert, so the
// repository must execute on the caller's transaction connection rather
// than the base gorm handle.
func TestRepositoryWithTxWritesOnCallerTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	repo := employee.NewRepository(gdb)
	empl := employee.Employee{
		ID:       uuid.New(),
		FullName: "Alice Doe",
		Email:    "alice@corp.test",
		HireDate: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "employees" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), &empl))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
