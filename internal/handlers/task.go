package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-dashboard/internal/dto"
	apierrors "github.com/yukikurage/team-dashboard/internal/errors"
	"github.com/yukikurage/team-dashboard/internal/services"
	"go.uber.org/zap"
)

// TaskHandler serves the mock task API the dashboard syncs against
type TaskHandler struct {
	taskService *services.TaskService
	log         *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log.Named("api.tasks"),
	}
}

// ListTasks returns every task, or the tasks of one assignee when assignedTo is given
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Query("assignedTo"))
	if err != nil {
		h.log.Error("list tasks", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// PatchTask merges the body into the stored task and returns the merged task
func (h *TaskHandler) PatchTask(c *gin.Context) {
	var req dto.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.PatchTask(services.PatchTaskInput{
		ID:        req.ID,
		Status:    req.Status,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskIDRequired):
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingField, "Task ID is required")
		case errors.Is(err, services.ErrInvalidStatus):
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidStatus, err.Error())
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		default:
			h.log.Error("patch task", zap.String("task_id", req.ID), zap.Error(err))
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, task)
}
