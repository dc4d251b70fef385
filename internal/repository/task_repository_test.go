package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/team-dashboard/internal/database"
	"github.com/yukikurage/team-dashboard/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository
}

func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.AutoMigrate(suite.db))
	suite.Require().NoError(database.Seed(suite.db, zap.NewNop()))

	suite.repo = NewTaskRepository(suite.db)
}

func (suite *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskRepositoryTestSuite) TestList_All() {
	tasks, err := suite.repo.List(TaskFilter{})
	suite.Require().NoError(err)
	suite.Len(tasks, len(database.SeedTasks()))
}

func (suite *TaskRepositoryTestSuite) TestList_ByAssigneeAndStatus() {
	status := models.TaskStatusDone
	tasks, err := suite.repo.List(TaskFilter{AssignedTo: "1", Status: &status})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal("t3", tasks[0].ID)
}

func (suite *TaskRepositoryTestSuite) TestList_UnknownAssigneeIsEmptyNotNil() {
	tasks, err := suite.repo.List(TaskFilter{AssignedTo: "nobody"})
	suite.Require().NoError(err)
	suite.NotNil(tasks)
	suite.Empty(tasks)
}

func (suite *TaskRepositoryTestSuite) TestFindByID() {
	task, err := suite.repo.FindByID("t4")
	suite.Require().NoError(err)
	suite.Equal("Fix login redirect", task.Title)

	_, err = suite.repo.FindByID("missing")
	suite.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (suite *TaskRepositoryTestSuite) TestUpdateStatus() {
	updatedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	err := suite.repo.UpdateStatus(models.TaskPatch{ID: "t1", Status: models.TaskStatusDone, UpdatedAt: updatedAt})
	suite.Require().NoError(err)

	task, err := suite.repo.FindByID("t1")
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusDone, task.Status)
	suite.True(updatedAt.Equal(task.UpdatedAt))
	suite.Equal("Set up CI pipeline", task.Title)
}

func (suite *TaskRepositoryTestSuite) TestUpdateStatus_NotFound() {
	err := suite.repo.UpdateStatus(models.TaskPatch{ID: "missing", Status: models.TaskStatusDone, UpdatedAt: time.Now()})
	suite.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormTaskRepository_UpdateStatus_SQL(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	updatedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE "tasks" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(models.TaskStatusInProgress, updatedAt, "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(models.TaskPatch{ID: "t1", Status: models.TaskStatusInProgress, UpdatedAt: updatedAt})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateStatus_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(models.TaskPatch{ID: "ghost", Status: models.TaskStatusDone, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTaskRepository_UpdateStatus_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	boom := errors.New("connection reset")

	mock.ExpectExec(`UPDATE "tasks" SET`).WillReturnError(boom)

	err := repo.UpdateStatus(models.TaskPatch{ID: "t1", Status: models.TaskStatusDone, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
