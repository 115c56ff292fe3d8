package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency caches the response of POST requests that carry an
// Idempotency-Key header so a retried salary assignment does not open a
// second ledger record. The lock key keeps two in-flight retries from
// racing; its short expiry clears it if the server dies mid-request.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "success", "data": cachedRes})
			return
		}

		locked, err := rdb.SetNX(c.Request.Context(), lockKey, "1", 30*time.Second).Result()
		if err == nil && !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Request with this idempotency key is already in progress",
			})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		_ = rdb.Del(c.Request.Context(), lockKey).Err()

		if writer.Status() >= 200 && writer.Status() < 300 && writer.body != nil {
			_ = rdb.Set(c.Request.Context(), cacheKey, writer.body, 24*time.Hour).Err()
		}
	}
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}
