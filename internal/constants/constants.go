package constants

// Session / context keys
const (
	SessionCookieName = "tracker_session"
	ContextKeyUserID  = "user_id"
	ContextKeyActor   = "actor"
)

// Auth
const MinPasswordLength = 8

// Task rules
const (
	MinPriority     = 1
	MaxPriority     = 10
	DefaultPriority = 5

	MinTaskAssignees = 1
	MaxTaskAssignees = 5

	// A task may have a parent, but that parent may not itself have one.
	SubtaskDepthErrorCode = "TGO026"
)

// Project rules
const MaxProjectNameLength = 100

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
