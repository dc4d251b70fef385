package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-dashboard/internal/board"
	"github.com/yukikurage/team-dashboard/internal/constants"
	"github.com/yukikurage/team-dashboard/internal/dto"
	apierrors "github.com/yukikurage/team-dashboard/internal/errors"
	"github.com/yukikurage/team-dashboard/internal/middleware"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/tasks"
	"github.com/yukikurage/team-dashboard/internal/team"
	"github.com/yukikurage/team-dashboard/internal/utils"
	"go.uber.org/zap"
)

// DashboardHandler serves the board, stats, drag and team views
type DashboardHandler struct {
	tasks *tasks.Repository
	team  *team.Directory
	log   *zap.Logger
}

func NewDashboardHandler(repo *tasks.Repository, directory *team.Directory, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		tasks: repo,
		team:  directory,
		log:   log.Named("dashboard"),
	}
}

// memberFilter reads the member query parameter; "all" and empty select every task
func memberFilter(c *gin.Context) string {
	member := strings.TrimSpace(c.Query(constants.QueryParamMember))
	if member == constants.DefaultMemberFilter {
		return ""
	}
	return member
}

func memberLabel(member string) string {
	if member == "" {
		return constants.DefaultMemberFilter
	}
	return member
}

// ListTasks returns the member's tasks, optionally limited to one column
func (h *DashboardHandler) ListTasks(c *gin.Context) {
	member := memberFilter(c)
	list := h.tasks.ForMember(member)

	if raw := c.Query(constants.QueryParamStatus); raw != "" {
		status := models.TaskStatus(raw)
		if !status.IsValid() {
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidStatus, "Unknown status")
			return
		}
		list = tasks.GroupByStatus(list)[status]
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Member: memberLabel(member),
		Tasks:  list,
		Total:  len(list),
	})
}

// GetBoard returns the three columns and their stats
func (h *DashboardHandler) GetBoard(c *gin.Context) {
	member := memberFilter(c)
	list := h.tasks.ForMember(member)

	c.JSON(http.StatusOK, dto.BoardResponse{
		Member:  memberLabel(member),
		Columns: dto.ToColumns(tasks.GroupByStatus(list)),
		Stats:   tasks.ComputeStats(list),
	})
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.Stats(memberFilter(c)))
}

// MoveTask moves a task and waits for the remote confirmation
func (h *DashboardHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result := tasks.Result(h.tasks.Move(c.Request.Context(), c.Param("id"), req.From, req.To))
	if !result.Success {
		c.JSON(http.StatusConflict, dto.MoveTaskResponse{
			Success: false,
			Message: result.Message,
			Code:    apierrors.ErrCodeMoveFailed,
		})
		return
	}

	c.JSON(http.StatusOK, dto.MoveTaskResponse{Success: true, Message: result.Message})
}

// StartDrag begins dragging a task on the caller's board
func (h *DashboardHandler) StartDrag(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	var req dto.DragStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	accepted := b.Machine.Start(req.TaskID)
	c.JSON(http.StatusOK, dto.DragResponse{Accepted: accepted, State: b.Machine.State()})
}

// DropDrag releases the dragged task; a dispatched move answers 202 and
// reports its outcome through the notifications
func (h *DashboardHandler) DropDrag(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	var req dto.DragDropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drop := b.Machine.Drop(c.Request.Context(), req.ToDropTarget())
	status := http.StatusOK
	if drop.Dispatched {
		status = http.StatusAccepted
	}
	c.JSON(status, dto.DragResponse{Accepted: drop.Dispatched, State: b.Machine.State(), Drop: &drop})
}

func (h *DashboardHandler) CancelDrag(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	b.Machine.Cancel()
	c.JSON(http.StatusOK, dto.DragResponse{Accepted: true, State: b.Machine.State()})
}

func (h *DashboardHandler) GetDrag(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, b.Machine.State())
}

func (h *DashboardHandler) ListNotifications(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, b.Notifications.Active())
}

func (h *DashboardHandler) DismissNotification(c *gin.Context) {
	b, ok := h.board(c)
	if !ok {
		return
	}

	if !b.Notifications.Dismiss(c.Param("id")) {
		apierrors.NotFound(c, "Notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTeam returns members filtered by name search and department
func (h *DashboardHandler) ListTeam(c *gin.Context) {
	if !h.loadTeam(c) {
		return
	}

	department := c.DefaultQuery(constants.QueryParamDepartment, constants.DefaultMemberFilter)
	search := c.Query(constants.QueryParamSearch)
	members := h.team.Filter(team.Filter{Search: search, Department: department})

	resp := dto.TeamListResponse{
		Members:    members,
		Total:      len(members),
		Search:     search,
		Department: department,
	}
	if utils.WantsPagination(c) {
		params := utils.GetPaginationParams(c)
		page := params.Response(len(members))
		resp.Members = utils.Page(members, params)
		resp.Pagination = &page
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) ListDepartments(c *gin.Context) {
	if !h.loadTeam(c) {
		return
	}

	c.JSON(http.StatusOK, h.team.Departments())
}

func (h *DashboardHandler) GetMember(c *gin.Context) {
	if !h.loadTeam(c) {
		return
	}

	member, ok := h.team.Get(c.Param("id"))
	if !ok {
		apierrors.NotFound(c, "Team member not found")
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember changes a member's contact fields and waits for the remote confirmation
func (h *DashboardHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.team.Update(c.Request.Context(), c.Param("id"), req.ToMemberUpdate())
	if err != nil {
		switch {
		case errors.Is(err, team.ErrMemberNotFound):
			apierrors.NotFound(c, "Team member not found")
		case errors.Is(err, team.ErrLoadFailed):
			apierrors.LoadFailed(c, "Failed to load team")
		default:
			h.log.Warn("member update failed", zap.String("member_id", c.Param("id")), zap.Error(err))
			apierrors.Conflict(c, apierrors.ErrCodeUpdateFailed, "Failed to update team member")
		}
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *DashboardHandler) board(c *gin.Context) (*board.Board, bool) {
	b, ok := middleware.GetBoard(c)
	if !ok {
		apierrors.InternalError(c, "Board session missing")
	}
	return b, ok
}

func (h *DashboardHandler) loadTeam(c *gin.Context) bool {
	if _, err := h.team.Load(c.Request.Context()); err != nil {
		_ = c.Error(err)
		apierrors.LoadFailed(c, "Failed to load team")
		return false
	}
	return true
}
