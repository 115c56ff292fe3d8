package bootstrap

import (
	"context"
	"time"

	"hr-backend/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger emits lifecycle audit entries through the shared zap
// logger, tagged with the request id when one travels in the context.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if entry.Meta != nil {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	l.logger.Info("audit event", fields...)
}
