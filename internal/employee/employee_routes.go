package employee

import (
	"hr-backend/internal/middleware"
	"hr-backend/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ExtractUserID())
	employees.Use(middleware.ContextLogger(zap.L()))
	{
		employees.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetById,
		)
		employees.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Create,
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Delete,
		)
	}
}
