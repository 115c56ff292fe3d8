package main

import (
	"net/http"
	"os"
	"time"

	"hr-backend/internal/app"
	"hr-backend/internal/bootstrap"
	"hr-backend/internal/middleware"
	"hr-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.Default()
	// Effective dates travel in the path as dd%2Fmm%2Fyyyy; match on the
	// raw path so the encoded slashes stay one segment.
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(middleware.RequestID())

	r.GET("/healthz", middleware.RateLimitByIP(5, 10), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// build dependency + routes
	if err := app.BuildApp(r); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewZapAuditLogger(logger)
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		auditLogger,
	)
}
