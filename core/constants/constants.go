package constants

import "time"

// Timeouts
const (
	DefaultTimeout     = 10 * time.Second
	HTTPClientTimeout  = 30 * time.Second
	RemoteAuthTimeout  = 5 * time.Minute
	ServerShutdownWait = 10 * time.Second
)

// Scheduling horizons and limits
const (
	SyncHorizonDays       = 30 // remote sync window
	SuggestionHorizonDays = 7  // slot search window
	MaxSuggestedSlots     = 5
	DefaultTaskDuration   = 60 // minutes
	SuggestionBufferTime  = 15 // minutes around existing events
)

// Context keys
const (
	ContextTokenData = "token_data"
)

// Snapshot keys (suffixes; the persistence layer prefixes the app namespace)
const (
	SnapshotKeyEvents        = "calendar:events"
	SnapshotKeyTasks         = "tasks"
	SnapshotKeyNotifications = "notifications"
)

// Asynq task types
const (
	TaskTypeEventReminder = "calendar:event_reminder"
)
