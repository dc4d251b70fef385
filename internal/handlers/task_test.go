package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/team-dashboard/internal/database"
	"github.com/yukikurage/team-dashboard/internal/models"
	"github.com/yukikurage/team-dashboard/internal/repository"
	"github.com/yukikurage/team-dashboard/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openSeededDB opens an in-memory database with the mock data set.
// One connection keeps every query on the same in-memory database.
func openSeededDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db, zap.NewNop()))
	return db
}

// newMockAPIRouter wires the mock API over db
func newMockAPIRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterMockAPI(r,
		NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db)), zap.NewNop()),
		NewTeamHandler(services.NewMemberService(repository.NewMemberRepository(db)), zap.NewNop()),
	)
	return r
}

// MockAPITestSuite defines the test suite for the mock task and team API
type MockAPITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *MockAPITestSuite) SetupTest() {
	suite.db = openSeededDB(suite.T())
	suite.router = newMockAPIRouter(suite.db)
}

func (suite *MockAPITestSuite) do(method, url string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MockAPITestSuite) findTask(id string) models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, "id = ?", id).Error)
	return task
}

// TestListTasks_Success tests listing the whole task set
func (suite *MockAPITestSuite) TestListTasks_Success() {
	w := suite.do(http.MethodGet, "/api/tasks", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []models.Task
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(suite.T(), tasks, len(database.SeedTasks()))
}

// TestListTasks_ByAssignee tests the assignedTo filter
func (suite *MockAPITestSuite) TestListTasks_ByAssignee() {
	w := suite.do(http.MethodGet, "/api/tasks?assignedTo=1", nil)

	var tasks []models.Task
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(suite.T(), tasks, 3)
	for _, task := range tasks {
		assert.Equal(suite.T(), "1", task.AssignedTo)
	}
}

// TestPatchTask_Success tests that a patch is merged and persisted
func (suite *MockAPITestSuite) TestPatchTask_Success() {
	at := time.Date(2024, time.February, 1, 12, 30, 0, 0, time.UTC)
	body, _ := json.Marshal(map[string]any{"id": "t1", "status": "Done", "updatedAt": at})

	w := suite.do(http.MethodPatch, "/api/tasks", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task models.Task
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(suite.T(), "t1", task.ID)
	assert.Equal(suite.T(), "Set up CI pipeline", task.Title)
	assert.Equal(suite.T(), models.TaskStatusDone, task.Status)
	assert.True(suite.T(), at.Equal(task.UpdatedAt))

	stored := suite.findTask("t1")
	assert.Equal(suite.T(), models.TaskStatusDone, stored.Status)
	assert.True(suite.T(), at.Equal(stored.UpdatedAt.UTC()))
}

// TestPatchTask_StatusOnly tests that an omitted updatedAt is stamped by the server
func (suite *MockAPITestSuite) TestPatchTask_StatusOnly() {
	before := suite.findTask("t2")

	w := suite.do(http.MethodPatch, "/api/tasks", []byte(`{"id":"t2","status":"To Do"}`))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	stored := suite.findTask("t2")
	assert.Equal(suite.T(), models.TaskStatusTodo, stored.Status)
	assert.True(suite.T(), stored.UpdatedAt.After(before.UpdatedAt))
}

// TestPatchTask_Errors tests the error responses of PATCH /api/tasks
func (suite *MockAPITestSuite) TestPatchTask_Errors() {
	tests := []struct {
		name string
		body string
		code int
		err  string
	}{
		{"malformed body", `{"id":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing id", `{"status":"Done"}`, http.StatusBadRequest, "MISSING_FIELD"},
		{"unknown status", `{"id":"t1","status":"Archived"}`, http.StatusBadRequest, "INVALID_STATUS"},
		{"unknown task", `{"id":"t999","status":"Done"}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPatch, "/api/tasks", []byte(tt.body))

			assert.Equal(suite.T(), tt.code, w.Code)
			var resp map[string]any
			suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(suite.T(), tt.err, resp["code"])
		})
	}

	assert.Equal(suite.T(), models.TaskStatusTodo, suite.findTask("t1").Status)
}

// TestListTasks_StorageError tests the 500 response when the database is gone
func (suite *MockAPITestSuite) TestListTasks_StorageError() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()

	w := suite.do(http.MethodGet, "/api/tasks", nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestTeam_ListAndUpdate tests GET and PUT /api/team
func (suite *MockAPITestSuite) TestTeam_ListAndUpdate() {
	w := suite.do(http.MethodGet, "/api/team", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var members []models.TeamMember
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &members))
	assert.Len(suite.T(), members, len(database.SeedMembers()))

	w = suite.do(http.MethodPut, "/api/team", []byte(`{"id":"2","telegramNickname":"@andrii"}`))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var member models.TeamMember
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &member))
	assert.Equal(suite.T(), "2", member.ID)
	assert.Equal(suite.T(), "@andrii", member.TelegramNickname)
	assert.Equal(suite.T(), "Andrii Shevchenko", member.Name)
}

// TestTeam_UpdateErrors tests the error responses of PUT /api/team
func (suite *MockAPITestSuite) TestTeam_UpdateErrors() {
	w := suite.do(http.MethodPut, "/api/team", []byte(`{"phone":"1"}`))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/team", []byte(`{"id":"42","phone":"1"}`))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPut, "/api/team", []byte(`not json`))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestMockAPITestSuite runs the test suite
func TestMockAPITestSuite(t *testing.T) {
	suite.Run(t, new(MockAPITestSuite))
}
