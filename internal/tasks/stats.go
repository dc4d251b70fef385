package tasks

import (
	"github.com/yukikurage/team-dashboard/internal/constants"
	"github.com/yukikurage/team-dashboard/internal/models"
)

type Performance string

const (
	PerformanceExcellent   Performance = "excellent"
	PerformanceGood        Performance = "good"
	PerformanceNeedsEffort Performance = "needs_effort"
)

// TaskStats is derived from a task list and never stored
type TaskStats struct {
	Total          int         `json:"total"`
	Completed      int         `json:"completed"`
	InProgress     int         `json:"inProgress"`
	Todo           int         `json:"todo"`
	CompletionRate int         `json:"completionRate"`
	Performance    Performance `json:"performance,omitempty"`
}

// ComputeStats counts tasks per column. The result does not depend on the order of tasks.
func ComputeStats(tasks []models.Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusDone:
			stats.Completed++
		case models.TaskStatusInProgress:
			stats.InProgress++
		case models.TaskStatusTodo:
			stats.Todo++
		}
	}

	stats.CompletionRate = CompletionRate(stats.Completed, stats.Total)
	if stats.Total > 0 {
		stats.Performance = performanceFor(stats.CompletionRate)
	}
	return stats
}

// CompletionRate returns completed/total as a percentage rounded half up, or 0 for an empty list
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*200 + total) / (2 * total)
}

func performanceFor(rate int) Performance {
	switch {
	case rate >= constants.ExcellentCompletionRate:
		return PerformanceExcellent
	case rate >= constants.GoodCompletionRate:
		return PerformanceGood
	default:
		return PerformanceNeedsEffort
	}
}

// GroupByStatus splits tasks into the three board columns, keeping their relative order.
// Every column key is present; tasks with an unknown status are left out.
func GroupByStatus(tasks []models.Task) map[models.TaskStatus][]models.Task {
	grouped := make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		grouped[status] = []models.Task{}
	}
	for _, task := range tasks {
		if column, ok := grouped[task.Status]; ok {
			grouped[task.Status] = append(column, task)
		}
	}
	return grouped
}

// FilterByAssignee returns the tasks of one member; an empty id returns a copy of all tasks
func FilterByAssignee(tasks []models.Task, memberID string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if memberID == "" || task.AssignedTo == memberID {
			out = append(out, task)
		}
	}
	return out
}
