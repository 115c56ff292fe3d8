package salary

import (
	"context"
	"encoding/json"
	"errors"

	employeeerrors "hr-backend/internal/employee/errors"
	"hr-backend/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle opens an initial zero-amount ledger record for
// every newly created employee. CreateOrAmend merges same-day duplicates,
// so redelivered events collapse into the existing record.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	service Service,
	logger *zap.Logger,
) {
	log := logger.Named("salary.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = service.CreateOrAmend(ctx, event.Email, AssignSalaryRequest{Amount: 0})
		if err != nil {
			if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				// Employee was removed before the event arrived; nothing to do.
				log.Warn("employee gone before initial salary, skipping",
					zap.String("employee_id", event.EmployeeID),
					zap.String("email", event.Email),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("create initial employee salary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("email", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("initial salary created from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("email", event.Email),
		)
	}
}
