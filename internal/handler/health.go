package handler

import (
	"context"
	"net/http"
	"time"

	"barveredales/internal/model"
	"barveredales/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health reports service status. The storage slot is always checked; redis is
// only checked when the deployment uses it.
func Health(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storageStatus := "connected"
		if err := st.View(ctx, func(*model.Document) error { return nil }); err != nil {
			storageStatus = "error"
		}

		status := http.StatusOK
		body := gin.H{"status": "ok", "storage": storageStatus}

		if rdb != nil {
			redisStatus := "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
			body["redis"] = redisStatus
			if redisStatus != "connected" {
				status = http.StatusServiceUnavailable
			}
		}
		if storageStatus != "connected" {
			status = http.StatusServiceUnavailable
		}
		if status != http.StatusOK {
			body["status"] = "error"
		}

		c.JSON(status, body)
	}
}
