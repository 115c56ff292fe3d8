package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hr-backend/internal/employee"
	employeeerrors "hr-backend/internal/employee/errors"
	"hr-backend/internal/events"
	"hr-backend/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	createFn  func(ctx context.Context, empl *employee.Employee) error
	findAllFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	f.employees = append(f.employees, *empl)
	return nil
}

func (f *fakeEmployeeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return f.employees, nil
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID.String() == id {
			return &f.employees[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for i := range f.employees {
		if f.employees[i].Email == email {
			return &f.employees[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	for i := range f.employees {
		if f.employees[i].ID == empl.ID {
			f.employees[i] = *empl
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	for i := range f.employees {
		if f.employees[i].ID.String() == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOutboxRepo struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error                  { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists employee and outbox event in one tx", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepo{}
		outbox := &fakeOutboxRepo{}
		svc := employee.NewServiceWithOutbox(db, repo, outbox, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Alice Doe",
			Email:    "alice@corp.test",
			Phone:    "08123",
			HireDate: "2024-01-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Alice Doe", resp.FullName)
		assert.Equal(t, "2024-01-01", resp.HireDate)

		assert.Len(t, repo.employees, 1)
		if assert.Len(t, outbox.events, 1) {
			ev := outbox.events[0]
			assert.Equal(t, "employee", ev.AggregateType)
			assert.Equal(t, resp.ID, ev.AggregateID)
			assert.Equal(t, events.EmployeeCreatedTopic, ev.Topic)
			assert.Equal(t, kafka.OutboxStatusPending, ev.Status)

			var payload events.EmployeeCreatedEvent
			assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, "employee_created", payload.EventType)
			assert.Equal(t, "alice@corp.test", payload.Email)
			assert.Equal(t, resp.ID, payload.EmployeeID)
		}

		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := employee.NewServiceWithOutbox(db, &fakeEmployeeRepo{}, &fakeOutboxRepo{}, nil)

		_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Alice Doe",
			Email:    "alice@corp.test",
			HireDate: "01/01/2024",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepo{
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
			},
		}
		svc := employee.NewServiceWithOutbox(db, repo, &fakeOutboxRepo{}, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName: "Alice Doe",
			Email:    "alice@corp.test",
			HireDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_Lookups(t *testing.T) {
	ctx := context.Background()

	seedRepo := func() (*fakeEmployeeRepo, employee.Employee) {
		empl := employee.Employee{
			ID:       uuid.New(),
			FullName: "Alice Doe",
			Email:    "alice@corp.test",
			HireDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
		return &fakeEmployeeRepo{employees: []employee.Employee{empl}}, empl
	}

	t.Run("get by email", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo, empl := seedRepo()
		svc := employee.NewService(db, repo, nil)

		resp, err := svc.GetByEmail(ctx, "alice@corp.test")
		assert.NoError(t, err)
		assert.Equal(t, empl.ID.String(), resp.ID)
	})

	t.Run("get by email not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo, _ := seedRepo()
		svc := employee.NewService(db, repo, nil)

		_, err = svc.GetByEmail(ctx, "ghost@corp.test")
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("get by id not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo, _ := seedRepo()
		svc := employee.NewService(db, repo, nil)

		_, err = svc.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("serves the directory without redis", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepo{employees: []employee.Employee{
			{ID: uuid.New(), FullName: "Alice Doe", Email: "alice@corp.test"},
			{ID: uuid.New(), FullName: "Bob Roe", Email: "bob@corp.test"},
		}}
		svc := employee.NewService(db, repo, nil)

		options, err := svc.GetOptions(ctx)
		assert.NoError(t, err)
		assert.Len(t, options, 2)
	})

	t.Run("collapses concurrent loads to one query", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		var calls int32
		entered := make(chan struct{})
		release := make(chan struct{})
		repo := &fakeEmployeeRepo{
			findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
				if atomic.AddInt32(&calls, 1) == 1 {
					close(entered)
				}
				<-release
				return []employee.Employee{{ID: uuid.New(), FullName: "Alice Doe", Email: "alice@corp.test"}}, nil
			},
		}
		svc := employee.NewService(db, repo, nil)

		var wg sync.WaitGroup
		load := func() {
			defer wg.Done()
			options, err := svc.GetOptions(ctx)
			assert.NoError(t, err)
			assert.Len(t, options, 1)
		}

		wg.Add(1)
		go load()
		<-entered

		// The first load is parked inside the repository; the rest must
		// join that flight instead of querying again.
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go load()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		empl := employee.Employee{
			ID:       uuid.New(),
			FullName: "Alice Doe",
			Email:    "alice@corp.test",
			HireDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
		repo := &fakeEmployeeRepo{employees: []employee.Employee{empl}}
		svc := employee.NewService(db, repo, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		resp, err := svc.Update(ctx, empl.ID.String(), employee.UpdateEmployeeRequest{
			FullName: "Alice Smith",
			Email:    "alice.smith@corp.test",
			HireDate: "2024-01-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Alice Smith", resp.FullName)
		assert.Equal(t, "alice.smith@corp.test", repo.employees[0].Email)
	})

	t.Run("unknown employee", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := employee.NewService(db, &fakeEmployeeRepo{}, nil)

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		_, err = svc.Update(ctx, uuid.NewString(), employee.UpdateEmployeeRequest{
			FullName: "Alice Smith",
			Email:    "alice@corp.test",
			HireDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
