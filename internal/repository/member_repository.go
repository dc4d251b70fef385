package repository

import (
	"github.com/yukikurage/team-dashboard/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

func (r *GormMemberRepository) List() ([]models.TeamMember, error) {
	members := []models.TeamMember{}
	if err := r.db.Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *GormMemberRepository) FindByID(id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormMemberRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}
