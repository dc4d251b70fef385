package tasks

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/team-dashboard/internal/models"
)

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{3, 10, 30},
		{4, 10, 40},
		{1, 8, 13},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{5, 5, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionRate(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestComputeStats(t *testing.T) {
	tasks := makeTasks(
		models.TaskStatusTodo, models.TaskStatusTodo,
		models.TaskStatusInProgress,
		models.TaskStatusDone, models.TaskStatusDone, models.TaskStatusDone,
	)

	stats := ComputeStats(tasks)

	assert.Equal(t, TaskStats{
		Total:          6,
		Completed:      3,
		InProgress:     1,
		Todo:           2,
		CompletionRate: 50,
		Performance:    PerformanceGood,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, TaskStats{}, ComputeStats(nil))
	assert.Equal(t, TaskStats{}, ComputeStats([]models.Task{}))
}

func TestComputeStats_Performance(t *testing.T) {
	assert.Equal(t, PerformanceExcellent, ComputeStats(makeTasks(models.TaskStatusDone)).Performance)
	assert.Equal(t, PerformanceNeedsEffort, ComputeStats(makeTasks(models.TaskStatusTodo)).Performance)
	assert.Equal(t, PerformanceNeedsEffort, ComputeStats(makeTasks(models.TaskStatusDone, models.TaskStatusTodo, models.TaskStatusTodo)).Performance)
}

func TestComputeStats_IdempotentAndOrderIndependent(t *testing.T) {
	tasks := makeTasks(
		models.TaskStatusDone, models.TaskStatusTodo, models.TaskStatusInProgress,
		models.TaskStatusDone, models.TaskStatusTodo, models.TaskStatusTodo, models.TaskStatusDone,
	)
	want := ComputeStats(tasks)
	assert.Equal(t, want, ComputeStats(tasks))

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Task(nil), tasks...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ComputeStats(shuffled))
	}
}

func TestGroupByStatus_Partitions(t *testing.T) {
	statuses := []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone}
	rng := rand.New(rand.NewPCG(3, 4))

	for n := 0; n < 30; n++ {
		list := make([]models.TaskStatus, n)
		for i := range list {
			list[i] = statuses[rng.IntN(len(statuses))]
		}
		tasks := makeTasks(list...)

		grouped := GroupByStatus(tasks)
		assert.Len(t, grouped, 3)

		seen := map[string]int{}
		total := 0
		for status, column := range grouped {
			total += len(column)
			for _, task := range column {
				assert.Equal(t, status, task.Status)
				seen[task.ID]++
			}
		}
		assert.Equal(t, len(tasks), total)
		for _, task := range tasks {
			assert.Equal(t, 1, seen[task.ID], task.ID)
		}
	}
}

func TestGroupByStatus_KeepsOrderAndEmptyColumns(t *testing.T) {
	tasks := makeTasks(models.TaskStatusDone, models.TaskStatusTodo, models.TaskStatusDone)

	grouped := GroupByStatus(tasks)

	assert.NotNil(t, grouped[models.TaskStatusInProgress])
	assert.Empty(t, grouped[models.TaskStatusInProgress])
	assert.Equal(t, []string{"t1", "t3"}, []string{grouped[models.TaskStatusDone][0].ID, grouped[models.TaskStatusDone][1].ID})
}

func TestGroupByStatus_SkipsUnknownStatus(t *testing.T) {
	tasks := makeTasks(models.TaskStatusTodo, models.TaskStatus("Archived"))

	grouped := GroupByStatus(tasks)

	assert.Len(t, grouped[models.TaskStatusTodo], 1)
	assert.Empty(t, grouped[models.TaskStatusDone])
	assert.Empty(t, grouped[models.TaskStatusInProgress])
}

func TestFilterByAssignee(t *testing.T) {
	tasks := makeTasks(models.TaskStatusTodo, models.TaskStatusDone, models.TaskStatusTodo)

	assert.Len(t, FilterByAssignee(tasks, ""), 3)
	assert.Len(t, FilterByAssignee(tasks, "1"), 2)
	assert.Empty(t, FilterByAssignee(tasks, "9"))
}
