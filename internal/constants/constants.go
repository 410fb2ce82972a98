package constants

// Session and context keys.
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "taskboard_session"
)

// Authentication.
const (
	MinPasswordLength = 8
)

// Pagination bounds for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxAIGeneratedTasks caps how many suggested tasks one request may create.
const MaxAIGeneratedTasks = 20
