package constants

import "time"

// Local store keys
const (
	StorageKeyTeam  = "team-dashboard-members"
	StorageKeyTasks = "team-dashboard-tasks"
)

// Session and context keys
const (
	SessionCookieName    = "dashboard_session"
	SessionKeyBoardID    = "board_id"
	ContextKeyBoardID    = "board_id"
	ContextKeyBoard      = "board"
	DefaultMemberFilter  = "all"
	QueryParamMember     = "member"
	QueryParamSearch     = "search"
	QueryParamDepartment = "department"
	QueryParamStatus     = "status"
)

// Simulated local store latency
const (
	DefaultStoreMinDelay = 100 * time.Millisecond
	DefaultStoreMaxDelay = 1000 * time.Millisecond
)

// Notifications
const (
	DefaultNotificationDuration = 2 * time.Second
)

// Remote service
const (
	DefaultRemoteTimeout = 10 * time.Second
)

// Stats thresholds
const (
	ExcellentCompletionRate = 80
	GoodCompletionRate      = 50
)

// Board sessions
const (
	BoardIdleTimeout   = 24 * time.Hour
	BoardSweepInterval = time.Hour
	SessionMaxAge      = 86400 * 7
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
