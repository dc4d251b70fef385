package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMemberNotFound   = errors.New("team member not found")
	ErrMemberIDRequired = errors.New("team member id is required")
)

// MemberService handles the mock team API business logic
type MemberService struct {
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

func (s *MemberService) ListMembers() ([]models.TeamMember, error) {
	members, err := s.memberRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// UpdateMember applies the contact field changes and returns the merged member
func (s *MemberService) UpdateMember(id string, update models.MemberUpdate) (*models.TeamMember, error) {
	if id == "" {
		return nil, ErrMemberIDRequired
	}

	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}

	merged := update.Apply(*member)
	if err := s.memberRepo.Update(&merged); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	return &merged, nil
}
