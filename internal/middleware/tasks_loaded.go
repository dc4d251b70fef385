package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/team-dashboard/internal/errors"
	"github.com/yukikurage/team-dashboard/internal/models"
	"go.uber.org/zap"
)

// TaskLoader loads the task list
type TaskLoader interface {
	Load(ctx context.Context) ([]models.Task, error)
}

// RequireTasks makes sure the task list is loaded before board handlers run.
// A failed load answers 503 LOAD_FAILED so the client can retry.
func RequireTasks(loader TaskLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := loader.Load(c.Request.Context()); err != nil {
			log.Warn("task list unavailable", zap.String("path", c.Request.URL.Path), zap.Error(err))
			_ = c.Error(err)
			apierrors.LoadFailed(c, "Failed to load tasks")
			c.Abort()
			return
		}
		c.Next()
	}
}
