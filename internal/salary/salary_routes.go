package salary

import (
	"hr-backend/internal/middleware"
	"hr-backend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	salaries := r.Group("/salary")
	salaries.Use(middleware.AuthMiddleware())
	salaries.Use(middleware.ExtractUserID())
	salaries.Use(middleware.ContextLogger(zap.L()))
	{
		salaries.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetLatest,
		)
		salaries.GET("/record/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetById,
		)
		salaries.GET("/employee/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetHistory,
		)
		salaries.GET("/:email/:effectiveFrom/exists",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.Exists,
		)
		salaries.POST("/:email",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.CreateOrAmend,
		)
		salaries.PUT("/:email/:effectiveFrom",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Amend,
		)
		salaries.DELETE("/:email/:effectiveFrom",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "salary", "update"),
			handler.Retire,
		)
	}
}
