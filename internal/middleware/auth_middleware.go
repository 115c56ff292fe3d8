package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"hr-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token issued by the identity service
// and puts the authenticated employee id on the gin context. Token issuance
// itself lives outside this backend.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code, message := "INVALID_TOKEN", "Token is invalid"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, message = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		employeeID, _ := claims["sub"].(string)
		if employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token has no subject", nil)
			c.Abort()
			return
		}

		c.Set(string(ContextEmployeeID), employeeID)
		c.Set("user_id", employeeID)

		c.Next()
	}
}
