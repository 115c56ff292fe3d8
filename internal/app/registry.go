package app

import (
	"database/sql"

	"hr-backend/internal/employee"
	"hr-backend/internal/messaging/kafka"
	"hr-backend/internal/rbac"
	"hr-backend/internal/rbac/infra"
	"hr-backend/internal/salary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	salaryService := salary.NewService(db, salaryRepo, employeeService)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	salaryHandler := salary.NewHandler(salaryService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		salary.RegisterRoutes(api, salaryHandler, rbacService, rdb)
	}

	return nil
}
