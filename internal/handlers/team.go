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

// TeamHandler serves the mock team API
type TeamHandler struct {
	memberService *services.MemberService
	log           *zap.Logger
}

func NewTeamHandler(memberService *services.MemberService, log *zap.Logger) *TeamHandler {
	return &TeamHandler{
		memberService: memberService,
		log:           log.Named("api.team"),
	}
}

func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers()
	if err != nil {
		h.log.Error("list members", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch team")
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateMember applies the contact fields in the body to the member named by its id
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.memberService.UpdateMember(req.ID, req.ToMemberUpdate())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberIDRequired):
			apierrors.BadRequestWithCode(c, apierrors.ErrCodeMissingField, "Member ID is required")
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, "Team member not found")
		default:
			h.log.Error("update member", zap.String("member_id", req.ID), zap.Error(err))
			apierrors.InternalError(c, "Failed to update team member")
		}
		return
	}

	c.JSON(http.StatusOK, member)
}
