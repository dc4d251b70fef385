package models

type Department string

type Role string

const (
	RoleTeamLead        Role = "Team Lead"
	RoleSeniorDeveloper Role = "Senior Developer"
	RoleDeveloper       Role = "Developer"
	RoleJuniorDeveloper Role = "Junior Developer"
	RoleManager         Role = "Manager"
	RoleAnalyst         Role = "Analyst"
	RoleDesigner        Role = "Designer"
)

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

type TeamMember struct {
	ID               string       `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name             string       `gorm:"type:varchar(255);not null" json:"name"`
	Role             Role         `gorm:"type:varchar(50);not null" json:"role"`
	Department       Department   `gorm:"type:varchar(100);not null;index" json:"department"`
	Status           MemberStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Avatar           string       `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	Phone            string       `gorm:"type:varchar(50)" json:"phone,omitempty"`
	TelegramNickname string       `gorm:"type:varchar(100)" json:"telegramNickname,omitempty"`
	Email            string       `gorm:"type:varchar(255);not null" json:"email"`
	JoinDate         string       `gorm:"type:varchar(32)" json:"joinDate"`
}

// MemberUpdate carries the editable contact fields of a team member
type MemberUpdate struct {
	Phone            *string `json:"phone,omitempty"`
	TelegramNickname *string `json:"telegramNickname,omitempty"`
}

// Apply returns a copy of m with the non-nil fields of u applied
func (u MemberUpdate) Apply(m TeamMember) TeamMember {
	if u.Phone != nil {
		m.Phone = *u.Phone
	}
	if u.TelegramNickname != nil {
		m.TelegramNickname = *u.TelegramNickname
	}
	return m
}
