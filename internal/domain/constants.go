package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Generation limits
const (
	// MinPasswordLength is the shortest password the generator accepts
	MinPasswordLength = 8
	// MaxPasswordLength is the longest password the generator accepts
	MaxPasswordLength = 64
	// DefaultPasswordLength is used when no length is configured
	DefaultPasswordLength = 16
)

// History constants
const (
	// HistoryCapacity is the number of entries kept in the history log
	HistoryCapacity = 10
	// HistoryStorageKey is the key-value slot holding the history snapshot
	HistoryStorageKey = "passwordHistory"
	// CopiedResetDelay is how long a "copied" flag stays set after a copy
	CopiedResetDelay = 2 * time.Second
)

// History backends
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
