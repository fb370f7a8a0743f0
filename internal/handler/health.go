package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings postgres and redis with a short deadline. 503 when either
// dependency is down, so the load balancer stops routing to this instance.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbOK := false
		if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			dbOK = true
		}
		redisOK := rdb.Ping(ctx).Err() == nil

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}

		estado := func(ok bool) string {
			if ok {
				return "connected"
			}
			return "error"
		}
		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"db":    estado(dbOK),
			"redis": estado(redisOK),
		})
	}
}
