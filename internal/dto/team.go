package dto

import (
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/utils"
)

// UpdateMemberRequest represents a contact update; the mock API also reads the id from the body
type UpdateMemberRequest struct {
	ID               string  `json:"id"`
	Phone            *string `json:"phone"`
	TelegramNickname *string `json:"telegramNickname"`
}

// TeamListResponse represents a filtered member list
type TeamListResponse struct {
	Members    []models.TeamMember `json:"members"`
	Total      int                 `json:"total"`
	Search     string              `json:"search,omitempty"`
	Department string              `json:"department"`

	Pagination *utils.PaginationResponse `json:"pagination,omitempty"`
}

// ToMemberUpdate converts the request into the editable member fields
func (r UpdateMemberRequest) ToMemberUpdate() models.MemberUpdate {
	return models.MemberUpdate{
		Phone:            r.Phone,
		TelegramNickname: r.TelegramNickname,
	}
}
