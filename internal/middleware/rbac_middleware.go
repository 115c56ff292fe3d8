package middleware

import (
	"net/http"

	"hr-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContextKey string

const ContextEmployeeID ContextKey = "employee_id"

// RBACService is a local interface so any package with an
// Enforce(domain.EnforceRequest) method fits here.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, ok := c.Get(string(ContextEmployeeID))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		req := domain.EnforceRequest{
			EmployeeID: employeeID.(string),
			Resource:   resource,
			Action:     action,
		}

		allowed, err := service.Enforce(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
