package middleware

import (
	"hr-backend/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger decorates each request with a scoped zap logger carrying
// the request id and authenticated user, and propagates both to the
// standard context for the service and repository layers.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// RequestID runs first on the engine; only mint one here when a
		// route group is mounted without it.
		rid := contextutil.GetRequestID(c.Request.Context())
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Header("X-Request-ID", rid)
		}

		uid := c.GetString("user_id_validated")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", uid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
