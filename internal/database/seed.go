package database

import (
	"fmt"
	"time"

	"github.com/yukikurage/team-dashboard/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedMembers is the mock team directory served by /api/team
func SeedMembers() []models.TeamMember {
	return []models.TeamMember{
		{ID: "1", Name: "Olena Kovalenko", Role: models.RoleTeamLead, Department: "Engineering", Status: models.MemberStatusActive, Email: "olena.kovalenko@example.com", Phone: "+380501112233", TelegramNickname: "@okovalenko", JoinDate: "2021-03-15"},
		{ID: "2", Name: "Andrii Shevchenko", Role: models.RoleSeniorDeveloper, Department: "Engineering", Status: models.MemberStatusActive, Email: "andrii.shevchenko@example.com", JoinDate: "2022-01-10"},
		{ID: "3", Name: "Iryna Melnyk", Role: models.RoleManager, Department: "Sales", Status: models.MemberStatusActive, Email: "iryna.melnyk@example.com", Phone: "+380671234567", JoinDate: "2020-09-01"},
		{ID: "4", Name: "Taras Bondarenko", Role: models.RoleAnalyst, Department: "Finance", Status: models.MemberStatusInactive, Email: "taras.bondarenko@example.com", JoinDate: "2023-05-22"},
		{ID: "5", Name: "Sofiia Tkachenko", Role: models.RoleDesigner, Department: "Engineering", Status: models.MemberStatusActive, Email: "sofiia.tkachenko@example.com", TelegramNickname: "@sofiia_t", JoinDate: "2023-11-02"},
	}
}

// SeedTasks is the mock task list served by /api/tasks
func SeedTasks() []models.Task {
	base := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	task := func(id, title, description string, status models.TaskStatus, assignee string, priority models.TaskPriority, day int) models.Task {
		created := base.AddDate(0, 0, day)
		return models.Task{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      status,
			AssignedTo:  assignee,
			Priority:    priority,
			CreatedAt:   created,
			UpdatedAt:   created.Add(2 * time.Hour),
		}
	}

	return []models.Task{
		task("t1", "Set up CI pipeline", "Build and test on every push", models.TaskStatusTodo, "1", models.TaskPriorityHigh, 0),
		task("t2", "Review onboarding docs", "", models.TaskStatusInProgress, "1", models.TaskPriorityMedium, 1),
		task("t3", "Plan sprint 12", "Collect estimates from the team", models.TaskStatusDone, "1", models.TaskPriorityMedium, 2),
		task("t4", "Fix login redirect", "Users land on a blank page after login", models.TaskStatusTodo, "2", models.TaskPriorityHigh, 0),
		task("t5", "Migrate cache layer", "", models.TaskStatusInProgress, "2", models.TaskPriorityLow, 3),
		task("t6", "Write API contract tests", "", models.TaskStatusDone, "2", models.TaskPriorityMedium, 4),
		task("t7", "Prepare Q2 sales report", "Numbers for the regional review", models.TaskStatusTodo, "3", models.TaskPriorityHigh, 1),
		task("t8", "Call back enterprise leads", "", models.TaskStatusInProgress, "3", models.TaskPriorityMedium, 2),
		task("t9", "Reconcile March invoices", "", models.TaskStatusTodo, "4", models.TaskPriorityLow, 5),
		task("t10", "Budget forecast draft", "", models.TaskStatusDone, "4", models.TaskPriorityHigh, 6),
		task("t11", "Dashboard color palette", "Align with the brand guide", models.TaskStatusInProgress, "5", models.TaskPriorityMedium, 2),
		task("t12", "Empty state illustrations", "", models.TaskStatusTodo, "5", models.TaskPriorityLow, 7),
	}
}

// Seed fills empty mock API tables with the default data set
func Seed(db *gorm.DB, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var members int64
		if err := tx.Model(&models.TeamMember{}).Count(&members).Error; err != nil {
			return fmt.Errorf("failed to count team members: %w", err)
		}
		if members == 0 {
			seed := SeedMembers()
			if err := tx.Create(&seed).Error; err != nil {
				return fmt.Errorf("failed to seed team members: %w", err)
			}
			log.Info("seeded team members", zap.Int("count", len(seed)))
		}

		var tasks int64
		if err := tx.Model(&models.Task{}).Count(&tasks).Error; err != nil {
			return fmt.Errorf("failed to count tasks: %w", err)
		}
		if tasks == 0 {
			seed := SeedTasks()
			if err := tx.Create(&seed).Error; err != nil {
				return fmt.Errorf("failed to seed tasks: %w", err)
			}
			log.Info("seeded tasks", zap.Int("count", len(seed)))
		}

		return nil
	})
}
