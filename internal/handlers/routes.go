package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-dashboard/internal/board"
	"github.com/yukikurage/team-dashboard/internal/middleware"
	"go.uber.org/zap"
)

// Health reports that the process is serving
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Team Dashboard is running",
	})
}

// RegisterMockAPI mounts the task and team API under /api
func RegisterMockAPI(r gin.IRouter, taskHandler *TaskHandler, teamHandler *TeamHandler) {
	api := r.Group("/api")
	{
		api.GET("/tasks", taskHandler.ListTasks)
		api.PATCH("/tasks", taskHandler.PatchTask)

		api.GET("/team", teamHandler.ListMembers)
		api.PUT("/team", teamHandler.UpdateMember)
	}
}

// RegisterDashboard mounts the dashboard under /dashboard. Session middleware
// must already be installed on r.
func RegisterDashboard(r gin.IRouter, h *DashboardHandler, registry *board.Registry, log *zap.Logger) {
	dash := r.Group("/dashboard")
	dash.Use(middleware.BoardSession(registry))
	{
		tasks := dash.Group("")
		tasks.Use(middleware.RequireTasks(h.tasks, log))
		{
			tasks.GET("/tasks", h.ListTasks)
			tasks.GET("/board", h.GetBoard)
			tasks.GET("/stats", h.GetStats)
			tasks.POST("/tasks/:id/move", h.MoveTask)

			tasks.GET("/drag", h.GetDrag)
			tasks.POST("/drag/start", h.StartDrag)
			tasks.POST("/drag/drop", h.DropDrag)
			tasks.POST("/drag/cancel", h.CancelDrag)
		}

		dash.GET("/notifications", h.ListNotifications)
		dash.DELETE("/notifications/:id", h.DismissNotification)

		dash.GET("/team", h.ListTeam)
		dash.GET("/team/departments", h.ListDepartments)
		dash.GET("/team/:id", h.GetMember)
		dash.PUT("/team/:id", h.UpdateMember)
	}
}
