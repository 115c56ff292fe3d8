package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hr-backend/internal/employee"
	"hr-backend/internal/events"
	"hr-backend/internal/salary"
	"hr-backend/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	employeeRepo := employee.NewRepository(gormDB)
	employeeService := employee.NewService(sqlDB, employeeRepo, nil)

	salaryRepo := salary.NewRepository(gormDB)
	salaryService := salary.NewService(sqlDB, salaryRepo, employeeService)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{kafkaBroker},
		Topic:       events.EmployeeCreatedTopic,
		GroupID:     "hr-backend-salary",
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go salary.ConsumeEmployeeLifecycle(ctx, reader, salaryService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
