package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "hr-backend/internal/employee/errors"
	"hr-backend/internal/events"
	"hr-backend/internal/messaging/kafka"
	"hr-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		HireDate: hireDate,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Email:      empl.Email,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	// Redis first
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps concurrent admin form loads from stampeding the DB
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("get employee by email failed", zap.String("email", email), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.Address = req.Address
	empl.HireDate = hireDate

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       empl.ID.String(),
		FullName: empl.FullName,
		Email:    empl.Email,
		Phone:    empl.Phone,
		Address:  empl.Address,
		HireDate: empl.HireDate.Format("2006-01-02"),
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, empl := range empls {
		res[i] = mapToResponse(empl)
	}
	return res
}
